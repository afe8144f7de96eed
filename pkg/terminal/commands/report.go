package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mcp-analytics/resort-dmr/pkg/export/excel"
	"github.com/mcp-analytics/resort-dmr/pkg/export/webhook"
)

const dateLayout = "01/02/2006"

type ReportCmd struct {
	profilePath string
	resort      string
	date        string
	outputDir   string
	publish     bool
}

func NewReportCmd() *cobra.Command {
	rc := &ReportCmd{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the daily management report for one resort",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&rc.resort, "resort", "", "Resort name as declared in the profile")
	cmd.Flags().StringVar(&rc.date, "date", "", "Reference date as MM/DD/YYYY (default yesterday)")
	cmd.Flags().StringVar(&rc.outputDir, "output", "", "Directory for the .xlsx file (default from profile)")
	cmd.Flags().BoolVar(&rc.publish, "webhook", false, "Publish the report to the profile's webhook endpoints")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("resort")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	reportDate := time.Now().AddDate(0, 0, -1)
	if rc.date != "" {
		parsed, err := time.Parse(dateLayout, rc.date)
		if err != nil {
			return fmt.Errorf("date must be MM/DD/YYYY: %w", err)
		}
		reportDate = parsed
	}

	service, profile, db, err := buildService(rc.profilePath)
	if err != nil {
		return err
	}
	defer db.Close()

	rep, err := service.Generate(ctx, rc.resort, reportDate)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	outputDir := rc.outputDir
	if outputDir == "" {
		outputDir = profile.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	filename := fmt.Sprintf("%s_dmr_%s.xlsx", webhook.Slug(rep.Resort), rep.ReportDate.Format("2006-01-02"))
	path, err := excel.NewWriter().Write(rep, filepath.Join(outputDir, filename))
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	logger.Info().Str("path", path).Msg("report written")

	if rc.publish {
		if len(profile.WebhookURLs) == 0 {
			logger.Warn().Msg("webhook publishing requested but no endpoints configured")
			return nil
		}
		delivered, err := webhook.NewPublisher(profile.WebhookURLs).Publish(ctx, rep)
		if err != nil {
			return fmt.Errorf("publish report: %w", err)
		}
		logger.Info().Int("delivered", delivered).Int("endpoints", len(profile.WebhookURLs)).Msg("report published")
	}

	return nil
}
