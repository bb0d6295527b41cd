package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	timeout        time.Duration
	userAgent      string
	maxBytes       int64
	noCache        bool
	noFooter       bool
	insecureTLS    bool
	noRobots       bool
	httpProxy      string
	httpsProxy     string
	searchProvider string
	offline        bool
	maxClaims      int
	maxEvidence    int
	minCredibility float64
	llmEnabled     bool
	llmModel       string
	claimWorkers   int
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <url|file|->",
	Short: "Verify a news article and produce a veracity verdict",
	Long: `Verify checks an article against published evidence:
- Extract checkable factual claims and rank them by importance
- Search the web for evidence about each claim
- Weigh sources by credibility and classify support vs. contradiction
- Score emotional tone and sensationalism
- Combine everything into a final verdict with confidence

The argument may be a URL, a path to a local text or HTML file, or "-"
to read the article from stdin.

Example:
  claimlens verify https://example.com/breaking-news
  claimlens verify article.txt --json verdict.json --md verdict.md
  claimlens verify https://example.com/story --llm --search tavily
  cat article.txt | claimlens verify - --offline`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "verdict.json", "output JSON path")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "overall verification timeout (increase for claim-heavy articles)")
	verifyCmd.Flags().StringVar(&userAgent, "ua", "Claimlens/0.1 (+https://github.com/claimlens/claimlens)", "HTTP User-Agent")
	verifyCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch and search)")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	verifyCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	verifyCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks when fetching")
	verifyCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	verifyCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Search flags
	verifyCmd.Flags().StringVar(&searchProvider, "search", "serper", "evidence search provider (serper, tavily, mock)")
	verifyCmd.Flags().BoolVar(&offline, "offline", false, "use the built-in mock searcher (no network, for testing)")
	verifyCmd.Flags().IntVar(&maxEvidence, "max-evidence", 5, "max evidence items per claim")
	verifyCmd.Flags().Float64Var(&minCredibility, "min-credibility", 0.3, "discard evidence from sources below this credibility")

	// Claim flags
	verifyCmd.Flags().IntVar(&maxClaims, "max-claims", 10, "max claims to verify per article")
	verifyCmd.Flags().IntVar(&claimWorkers, "workers", 4, "concurrent claim verification workers")

	// LLM flags
	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "use an LLM for claim extraction and classification")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd.Flags(), "timeout")
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	var verdict *model.FinalVerdict

	switch {
	case strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://"):
		if verbose {
			fmt.Fprintf(os.Stderr, "Verifying: %s\n\n", target)
		}
		verdict, err = p.VerifyURL(ctx, target)

	case target == "-":
		content, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return fmt.Errorf("read stdin: %w", readErr)
		}
		verdict, err = p.VerifyText(ctx, string(content), "")

	default:
		content, readErr := os.ReadFile(target)
		if readErr != nil {
			return fmt.Errorf("read file: %w", readErr)
		}
		verdict, err = p.VerifyText(ctx, string(content), "")
	}

	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Checked %d claims\n", len(verdict.ClaimBreakdown))
		fmt.Fprintf(os.Stderr, "✓ Collected %d evidence cards\n", len(verdict.EvidenceCards))
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(verdict, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles the pipeline configuration in layers: built-in
// defaults, then the config file and CLAIMLENS_* env vars read by viper,
// then any flag the user set explicitly. httpTimeoutFlag names the flag
// carrying the per-article HTTP timeout, since verify and batch register
// it under different names.
func buildConfig(flags *pflag.FlagSet, httpTimeoutFlag string) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	overrides := map[string]func(){
		httpTimeoutFlag:   func() { cfg.HTTP.Timeout = timeout },
		"ua":              func() { cfg.HTTP.UserAgent = userAgent },
		"max-bytes":       func() { cfg.HTTP.MaxBodyBytes = maxBytes },
		"insecure":        func() { cfg.HTTP.InsecureTLS = insecureTLS },
		"no-robots":       func() { cfg.HTTP.RespectRobots = !noRobots },
		"http-proxy":      func() { cfg.HTTP.HTTPProxy = httpProxy },
		"https-proxy":     func() { cfg.HTTP.HTTPSProxy = httpsProxy },
		"no-cache":        func() { cfg.Cache.Enabled = !noCache },
		"search":          func() { cfg.Search.Provider = searchProvider },
		"max-evidence":    func() { cfg.Search.MaxEvidencePerClaim = maxEvidence },
		"min-credibility": func() { cfg.Search.MinCredibility = minCredibility },
		"max-claims":      func() { cfg.Ranker.MaxClaims = maxClaims },
		"workers":         func() { cfg.Concurrency.ClaimWorkers = claimWorkers },
		"no-footer":       func() { cfg.Output.IncludeFooter = !noFooter },
		"llm-model":       func() { cfg.LLM.Model = llmModel },
	}
	flags.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})

	if verbose {
		cfg.Output.Verbose = true
	}
	if offline {
		cfg.Search.Provider = "mock"
	}

	switch cfg.Search.Provider {
	case "serper":
		if cfg.Search.SerperAPIKey == "" {
			cfg.Search.SerperAPIKey = envFirst("CLAIMLENS_SEARCH_SERPER_API_KEY", "SERPER_API_KEY")
		}
	case "tavily":
		if cfg.Search.TavilyAPIKey == "" {
			cfg.Search.TavilyAPIKey = envFirst("CLAIMLENS_SEARCH_TAVILY_API_KEY", "TAVILY_API_KEY")
		}
	}

	if llmEnabled {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.Provider == "openai" {
		if cfg.LLM.APIKey == "" {
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = os.Getenv("OPENAI_BASE_URL")
		}
	}

	return cfg, nil
}

// envFirst returns the first non-empty environment variable
func envFirst(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
