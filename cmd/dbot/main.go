// Command dbot is a host harness around the statement enrichment
// pipeline: it reads a profile and a statement, runs quality-gated
// regeneration, and prints the outcome as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ShkrSltn/dbot-sub000/config"
	"github.com/ShkrSltn/dbot-sub000/enrich"
	"github.com/ShkrSltn/dbot-sub000/evaluate"
	"github.com/ShkrSltn/dbot-sub000/llm"
	"github.com/ShkrSltn/dbot-sub000/metrics"
	"github.com/ShkrSltn/dbot-sub000/presets"
	"github.com/ShkrSltn/dbot-sub000/profile"
	"github.com/ShkrSltn/dbot-sub000/promptstore"
	"github.com/ShkrSltn/dbot-sub000/regen"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dbot",
		Short:         "Personalize digital competency statements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEnrichCmd())
	root.AddCommand(newSchemaCmd())
	return root
}

type enrichFlags struct {
	statement   string
	profilePath string
	promptID    int
	attempts    int
	noEval      bool
	length      int
	model       string
	temperature float64
	dbPath      string
}

func newEnrichCmd() *cobra.Command {
	flags := &enrichFlags{}

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich a competency statement for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrich(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.statement, "statement", "s", "", "original competency statement (required)")
	cmd.Flags().StringVarP(&flags.profilePath, "profile", "p", "", "path to a YAML profile file")
	cmd.Flags().IntVar(&flags.promptID, "prompt-id", presets.PromptIDDefault, "prompt template id (0 and negative ids are built-in)")
	cmd.Flags().IntVar(&flags.attempts, "attempts", config.DefaultMaxAttempts, "maximum regeneration attempts")
	cmd.Flags().BoolVar(&flags.noEval, "no-eval", false, "disable quality-gated evaluation")
	cmd.Flags().IntVar(&flags.length, "length", 0, "statement length: <=100 is a percentage, larger is absolute characters")
	cmd.Flags().StringVar(&flags.model, "model", "", "chat model (defaults to configuration)")
	cmd.Flags().Float64Var(&flags.temperature, "temperature", config.DefaultTemperature, "sampling temperature")
	cmd.Flags().StringVar(&flags.dbPath, "db", "", "path to a SQLite prompt store with custom templates")
	_ = cmd.MarkFlagRequired("statement")

	return cmd
}

func runEnrich(cmd *cobra.Command, flags *enrichFlags) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.model != "" {
		cfg.Model = flags.model
	}
	logger := utils.NewLogger(cfg.LogLevel)

	prof, err := loadProfile(flags.profilePath)
	if err != nil {
		return err
	}

	settings := config.Settings{
		EvaluationEnabled:     !flags.noEval,
		EvaluationMaxAttempts: flags.attempts,
		SelectedPromptID:      flags.promptID,
	}
	policy := config.ResolvePolicy(settings)
	policy.ModelName = cfg.Model
	policy.Temperature = flags.temperature
	policy.StatementLength = flags.length
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}

	var repo presets.Repository
	if flags.dbPath != "" {
		store, err := promptstore.Open(flags.dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		repo = store
	}
	template := presets.NewResolver(repo, logger).Resolve(cmd.Context(), settings, "")

	models := llm.NewModelProvider(cfg, nil, logger)
	chat, err := models.ChatModel(policy.ModelName, policy.Temperature, 0)
	if err != nil {
		return err
	}
	judge, err := models.ChatModel(policy.ModelName, evaluate.DefaultJudgeTemperature, 0)
	if err != nil {
		return err
	}
	embedder, err := models.EmbeddingModel(cfg.EmbeddingModel)
	if err != nil {
		return err
	}

	controller := regen.NewController(
		enrich.NewEnricher(chat, logger),
		metrics.NewCalculator(embedder, policy.ModelName, logger),
		evaluate.NewEvaluator(judge, logger),
		logger,
	)

	outcome, err := controller.Regenerate(cmd.Context(), regen.Request{
		Context:     prof.ContextString(),
		Original:    flags.statement,
		Proficiency: prof.Proficiency(),
		Policy:      policy,
		Template:    template,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func loadProfile(path string) (profile.Profile, error) {
	if path == "" {
		return profile.Profile{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	var p profile.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return profile.Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the enrichment outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := regen.OutcomeSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(schema))
			return nil
		},
	}
}
