// Package cli implements the concierge command line tool.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/themobileprof/portfolio-concierge/internal/knowledge"
	"github.com/themobileprof/portfolio-concierge/internal/resolver"
)

const defaultKnowledgePath = "knowledge.yaml"

func AskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Resolve a question against a knowledge file",
		Long:  "Resolve a visitor question offline, exactly as the widget would answer it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}

	cmd.Flags().StringP("knowledge", "k", defaultKnowledgePath, "Path to the knowledge record (JSON or YAML)")
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().Bool("explain", false, "Show intent, safety category and match score")

	return cmd
}

type askOutput struct {
	Answer  string           `json:"answer"`
	Source  string           `json:"source"`
	Actions []knowledge.Link `json:"actions"`
	Intent  string           `json:"intent"`
	FAQID   string           `json:"faq_id,omitempty"`
	Safety  string           `json:"safety,omitempty"`
	Score   float64          `json:"score,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("knowledge")
	asJSON, _ := cmd.Flags().GetBool("json")
	explain, _ := cmd.Flags().GetBool("explain")

	rec, err := knowledge.LoadFile(path)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	res := resolver.Resolve(question, rec)
	actions := resolver.TruncateActions(res.Actions)
	if actions == nil {
		actions = []knowledge.Link{}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		o := askOutput{
			Answer:  res.Answer,
			Source:  res.Source,
			Actions: actions,
			Intent:  string(res.Intent),
		}
		if explain {
			o.FAQID = res.FAQID
			o.Safety = string(res.Safety)
			o.Score = res.Score
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	}

	fmt.Fprintln(out, res.Answer)
	fmt.Fprintf(out, "\n[%s]\n", res.Source)
	for _, a := range actions {
		fmt.Fprintf(out, "  -> %s: %s\n", a.Label, a.URL)
	}
	if explain {
		fmt.Fprintf(out, "intent=%s safety=%s", res.Intent, res.Safety)
		if res.FAQID != "" {
			fmt.Fprintf(out, " faq=%s score=%.2f", res.FAQID, res.Score)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a knowledge file",
		Long:  "Parse and validate a knowledge record, then print its section counts",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	rec, err := knowledge.LoadFile(args[0])
	if err != nil {
		var verr *knowledge.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s is invalid: %w", args[0], err)
		}
		return err
	}

	sum := knowledge.Summarize(rec)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s is valid (version %q, fingerprint %s)\n", args[0], sum.Version, knowledge.Fingerprint(rec))
	fmt.Fprintf(out, "  highlights:     %d\n", sum.Highlights)
	fmt.Fprintf(out, "  projects:       %d\n", sum.Projects)
	fmt.Fprintf(out, "  skill groups:   %d\n", sum.SkillGroups)
	fmt.Fprintf(out, "  certifications: %d\n", sum.Certifications)
	fmt.Fprintf(out, "  experience:     %d\n", sum.Experience)
	fmt.Fprintf(out, "  faq:            %d\n", sum.FAQ)
	fmt.Fprintf(out, "  links:          %d\n", sum.Links)
	fmt.Fprintf(out, "  education:      %t\n", sum.HasEducation)
	fmt.Fprintf(out, "  work policy:    %t\n", sum.HasWorkPolicy)
	return nil
}
