package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
)

var (
	fieldLabel   string
	fieldType    string
	fieldContext string
	fieldLimit   int
	fieldJSON    bool
)

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Classify form fields and gather fill evidence",
}

var fieldClassifyCmd = &cobra.Command{
	Use:   "classify [field-name]",
	Short: "Classify a form field",
	Long: `Resolves a field's semantic category from its name, label and
input type, and reports whether it is sensitive or skippable.`,
	Args: cobra.ExactArgs(1),
	RunE: runFieldClassify,
}

var fieldEvidenceCmd = &cobra.Command{
	Use:   "evidence [field-name]",
	Short: "Retrieve supporting evidence for a field",
	Args:  cobra.ExactArgs(1),
	RunE:  runFieldEvidence,
}

var fieldFillCmd = &cobra.Command{
	Use:   "fill [field-name]",
	Short: "Propose a fill value for a field",
	Long: `Classifies the field, retrieves supporting evidence from the
ingested documents and proposes a concrete fill value. Sensitive
fields are always skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runFieldFill,
}

func init() {
	for _, c := range []*cobra.Command{fieldClassifyCmd, fieldEvidenceCmd, fieldFillCmd} {
		c.Flags().StringVarP(&fieldLabel, "label", "l", "", "visible label of the field")
		c.Flags().StringVarP(&fieldType, "type", "t", "", "input type of the field")
		c.Flags().BoolVar(&fieldJSON, "json", false, "output as JSON")
	}
	fieldEvidenceCmd.Flags().StringVarP(&fieldContext, "context", "c", "", "page context, e.g. the form title")
	fieldEvidenceCmd.Flags().IntVarP(&fieldLimit, "limit", "n", 3, "maximum evidence chunks")
	fieldFillCmd.Flags().StringVarP(&fieldContext, "context", "c", "", "page context, e.g. the form title")

	fieldCmd.AddCommand(fieldClassifyCmd)
	fieldCmd.AddCommand(fieldEvidenceCmd)
	fieldCmd.AddCommand(fieldFillCmd)
	rootCmd.AddCommand(fieldCmd)
}

func descriptorFromFlags(args []string) domain.FieldDescriptor {
	return domain.FieldDescriptor{
		Name:  args[0],
		Label: fieldLabel,
		Type:  fieldType,
	}
}

func runFieldClassify(cmd *cobra.Command, args []string) error {
	if fieldService == nil {
		return errors.New("field service not configured")
	}

	cls := fieldService.Classify(descriptorFromFlags(args))

	if fieldJSON {
		return outputJSON(cmd, cls)
	}

	cmd.Printf("Field: %s\n\n", args[0])
	cmd.Printf("  Category:   %s\n", cls.Category)
	cmd.Printf("  Confidence: %.2f\n", cls.Confidence)
	if cls.Sensitive {
		cmd.Println("  Sensitive:  yes (never auto-filled)")
	}
	if cls.Skippable {
		cmd.Println("  Skippable:  yes")
	}
	return nil
}

func runFieldEvidence(cmd *cobra.Command, args []string) error {
	if fieldService == nil {
		return errors.New("field service not configured")
	}

	result, err := fieldService.Retrieve(context.Background(), descriptorFromFlags(args), fieldContext, fieldLimit)
	if err != nil {
		return fmt.Errorf("evidence retrieval failed: %w", err)
	}

	if fieldJSON {
		return outputJSON(cmd, result)
	}

	if len(result.Evidence) == 0 {
		cmd.Println("No evidence found.")
		return nil
	}

	cmd.Printf("Evidence (confidence %.2f):\n\n", result.Confidence)
	for i, ev := range result.Evidence {
		cmd.Printf("  [%d] %s#%d (%.2f)\n", i+1, ev.DocumentID, ev.ChunkIndex, ev.Score)
		cmd.Printf("      %s\n", snippet(ev.Content, 120))
		cmd.Println()
	}
	return nil
}

func runFieldFill(cmd *cobra.Command, args []string) error {
	if fieldService == nil {
		return errors.New("field service not configured")
	}

	suggestion, err := fieldService.Suggest(context.Background(), descriptorFromFlags(args), fieldContext)
	if err != nil {
		return fmt.Errorf("fill suggestion failed: %w", err)
	}

	if fieldJSON {
		return outputJSON(cmd, suggestion)
	}

	if suggestion.Skipped {
		cmd.Printf("Field %s skipped.\n", args[0])
		return nil
	}

	cmd.Printf("Field: %s\n\n", args[0])
	cmd.Printf("  Value:      %s\n", suggestion.Value)
	cmd.Printf("  Provider:   %s\n", suggestion.Provider)
	cmd.Printf("  Confidence: %.2f\n", suggestion.Confidence)
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
