package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/nextstep/internal/career"
	"github.com/spigell/nextstep/internal/pipeline"
)

const (
	PromptProfile = "Show parsed profile"
	PromptJSON    = "Print everything as JSON"
	PromptExit    = "Exit"
)

var errExit = errors.New("exit requested")

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path|s3://bucket/key>",
	Short: "Parse a resume and recommend career paths",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		env := setup(ctx)
		defer env.logger.Sync()

		doc := env.load(ctx, args[0])
		analysis := env.pipeline.Analyze(ctx, doc.Name, doc.Content)

		if len(analysis.Recommendations) == 0 {
			env.logger.Info("no recommendations",
				zap.Bool("ai_available", env.pipeline.AIAvailable()),
				zap.Strings("skills", analysis.Skills),
			)
		}

		interactive, _ := cmd.Flags().GetBool("interactive")
		if !interactive {
			if err := printJSON(os.Stdout, analysis); err != nil {
				env.logger.Fatal("printing analysis", zap.Error(err))
			}
			return
		}

		if err := browse(os.Stdout, analysis); err != nil && !errors.Is(err, errExit) {
			env.logger.Fatal("exiting", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolP("interactive", "i", false, "browse recommendations interactively")
}

// browse lets the user pick recommendations one at a time until they exit.
func browse(w io.Writer, analysis pipeline.Analysis) error {
	items := make([]string, 0, len(analysis.Recommendations)+3)
	for i, rec := range analysis.Recommendations {
		items = append(items, recommendationLabel(i, rec))
	}
	items = append(items, PromptProfile, PromptJSON, PromptExit)

	for {
		prompt := promptui.Select{
			Label: "Choose a recommendation and press ENTER",
			Items: items,
			Size:  len(items),
		}

		idx, selected, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := handleSelection(w, analysis, idx, selected); err != nil {
			return err
		}
	}
}

func handleSelection(w io.Writer, analysis pipeline.Analysis, idx int, selected string) error {
	switch selected {
	case PromptExit:
		return errExit
	case PromptProfile:
		return printJSON(w, analysis.Parsed)
	case PromptJSON:
		return printJSON(w, analysis)
	default:
		if idx < 0 || idx >= len(analysis.Recommendations) {
			return fmt.Errorf("invalid selection: %s", selected)
		}
		_, err := io.WriteString(w, describeRecommendation(analysis.Recommendations[idx]))
		return err
	}
}

func recommendationLabel(i int, rec career.Recommendation) string {
	return fmt.Sprintf("%d. %s (%d%%)", i+1, rec.Title, rec.Probability)
}

func describeRecommendation(rec career.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", rec.Title)
	fmt.Fprintf(&b, "  probability: %d%%\n", rec.Probability)
	fmt.Fprintf(&b, "  why: %s\n", rec.Explanation)
	if len(rec.SupportingSkills) > 0 {
		fmt.Fprintf(&b, "  supporting skills: %s\n", strings.Join(rec.SupportingSkills, ", "))
	}
	b.WriteString("\n")
	return b.String()
}
