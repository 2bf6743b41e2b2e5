package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/nextstep/internal/pipeline"
	"github.com/spigell/nextstep/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <path|s3://bucket/key>",
	Short: "Parse a resume and print the extracted profile as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ctx := context.Background()
		env := setup(ctx)
		defer env.logger.Sync()

		doc := env.load(ctx, args[0])
		parsed := env.pipeline.ParseDocument(ctx, doc.Name, doc.Content)

		if err := printJSON(os.Stdout, parsed); err != nil {
			env.logger.Fatal("printing profile", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

// commandEnv bundles what the document commands share.
type commandEnv struct {
	logger   *zap.Logger
	config   *Config
	pipeline *pipeline.Service
	loader   *source.Loader
}

func setup(ctx context.Context) *commandEnv {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	capability, err := newCapability(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building language model capability", zap.Error(err))
	}

	return &commandEnv{
		logger:   logger,
		config:   config,
		pipeline: pipeline.New(capability, logger),
		loader:   source.NewLoader(config.Source.S3),
	}
}

func (e *commandEnv) load(ctx context.Context, ref string) source.Document {
	doc, err := e.loader.Load(ctx, ref)
	if err != nil {
		e.logger.Fatal("loading document", zap.String("ref", ref), zap.Error(err))
	}

	e.logger.Debug("document loaded",
		zap.String("name", doc.Name),
		zap.Int("bytes", len(doc.Content)),
		zap.Bool("remote", source.IsRemote(ref)),
	)

	return doc
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// redacted returns a copy of config that is safe to log.
func redacted(config *Config) Config {
	out := *config
	if config.AI != nil {
		ai := *config.AI
		if ai.Gemini != nil {
			gemini := *ai.Gemini
			if gemini.APIKey != "" {
				gemini.APIKey = "<redacted>"
			}
			ai.Gemini = &gemini
		}
		out.AI = &ai
	}
	return out
}
