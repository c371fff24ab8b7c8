package app

import "github.com/spf13/pflag"

// RegisterFlags registers all CLI flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("auth-type", "a", "", "Authentication type: none, basic, or apikey")
	flags.StringP("auth-basic-username", "u", "", "Basic auth username")
	flags.StringP("auth-basic-password", "P", "", "Basic auth password")
	flags.StringSliceP("auth-api-keys", "k", nil, "API keys (comma-separated)")

	flags.StringP("owner", "o", "", "Store repository owner")
	flags.StringP("repo", "r", "", "Store repository name")
	flags.StringP("branch", "b", "", "Store branch")
	flags.String("store-host", "", "Browse host for constructed article links")
	flags.String("api-base-url", "", "Contents API base URL override")
	flags.String("token", "", "API token (optional, raises rate limits)")
	flags.Int("concurrency", 0, "Parallel content fetches per search")
	flags.Bool("lenient", false, "Treat a failed article fetch as no match instead of failing the search")
	flags.Bool("recursive", false, "List store subdirectories as well as the root")
	flags.Int("max-results", 0, "Result cap for content search")
}
