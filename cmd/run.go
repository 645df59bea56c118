package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Mazosolution/mazo-parser/internal/ai"
	"github.com/Mazosolution/mazo-parser/internal/ai/gemini"
	"github.com/Mazosolution/mazo-parser/internal/batch"
	"github.com/Mazosolution/mazo-parser/internal/document"
	"github.com/Mazosolution/mazo-parser/internal/history"
	"github.com/Mazosolution/mazo-parser/internal/logger"
	"github.com/Mazosolution/mazo-parser/internal/match"
	"github.com/Mazosolution/mazo-parser/internal/parser"
	"github.com/Mazosolution/mazo-parser/internal/report"
	"github.com/Mazosolution/mazo-parser/internal/secrets"
	"github.com/Mazosolution/mazo-parser/internal/textract"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowReport       = "Show the report"
	PromptExportCSV        = "Export the report to CSV"
	PromptReportByPosition = "Report by position"
	PromptCandidatesToFile = "Dump candidates to file"
	PromptSaveHistory      = "Save the run to history"
	PromptQuit             = "Quit"

	maxJDCount     = 10
	maxResumeCount = 25
	maxBatchSize   = 100

	defaultReportFile  = "mazo-report.csv"
	defaultHistoryFile = "mazo-history.json"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{
		PromptShowReport, PromptExportCSV, PromptReportByPosition,
		PromptCandidatesToFile, PromptSaveHistory, PromptQuit,
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the mazo-parser main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

// runState carries everything the action loop needs after matching finished.
type runState struct {
	config     *Config
	documents  *document.Documents
	candidates *document.Candidates
	entries    []report.Entry
	fileCount  int
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("jd-dir", "", "directory with job description files (pdf, docx, txt)")
	runCmd.Flags().String("resume-dir", "", "directory with resume files (pdf, docx, txt)")
	runCmd.Flags().StringP("report-file", "o", "", "path for the CSV report export. Default is "+defaultReportFile)
	runCmd.Flags().String("history-file", "", "path for the run history file. Default is "+defaultHistoryFile)
	runCmd.Flags().BoolP("auto-approve", "y", false, "show, export and record the report without prompting")

	viper.BindPFlag("jd-dir", runCmd.Flags().Lookup("jd-dir"))
	viper.BindPFlag("resume-dir", runCmd.Flags().Lookup("resume-dir"))
	viper.BindPFlag("report-file", runCmd.Flags().Lookup("report-file"))
	viper.BindPFlag("history-file", runCmd.Flags().Lookup("history-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the mazo-parser", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	jdDir := firstNonEmpty(viper.GetString("jd-dir"), config.JDDir)
	resumeDir := firstNonEmpty(viper.GetString("resume-dir"), config.ResumeDir)
	if jdDir == "" || resumeDir == "" {
		logger.Fatal("both jd-dir and resume-dir are required, via flags or the configuration file")
	}

	guesser, err := newFieldGuesser(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the field guesser", zap.Error(err))
	}

	p := parser.New(guesser, logger)

	jdFiles, err := textract.LoadDir(jdDir)
	if err != nil {
		logger.Fatal("loading job description files", zap.Error(err))
	}

	resumeFiles, err := textract.LoadDir(resumeDir)
	if err != nil {
		logger.Fatal("loading resume files", zap.Error(err))
	}

	if err := checkLimits(jdFiles, resumeFiles); err != nil {
		logger.Fatal("refusing to start", zap.Error(err))
	}

	if len(jdFiles) == 0 {
		logger.Info("exiting", zap.String("reason", "no job description files found"))
		return
	}

	if len(resumeFiles) == 0 {
		logger.Info("exiting", zap.String("reason", "no resume files found"))
		return
	}

	logger.Info("parsing job descriptions", zap.Int("count", len(jdFiles)))

	jdBatch := batch.New[*document.Document](logger)
	jdItems, jdStats, err := jdBatch.Run(ctx, jdFiles, p.ParseJD, progressLogger(logger, "job descriptions"))
	if err != nil {
		logger.Fatal("parsing job descriptions", zap.Error(err))
	}
	reportBatch(logger, "job descriptions", jdStats)

	documents := &document.Documents{Items: jdItems}
	if documents.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no job descriptions could be parsed"))
		return
	}

	logger.Info("parsing resumes", zap.Int("count", len(resumeFiles)))

	resumeBatch := batch.New[*document.Resume](logger)
	resumes, resumeStats, err := resumeBatch.Run(ctx, resumeFiles, p.ParseResume, progressLogger(logger, "resumes"))
	if err != nil {
		logger.Fatal("parsing resumes", zap.Error(err))
	}
	reportBatch(logger, "resumes", resumeStats)

	if len(resumes) == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes could be parsed"))
		return
	}

	candidates := &document.Candidates{}
	for _, resume := range resumes {
		if resume.Email == "" && resume.Phone == "" && len(resume.Skills) == 0 {
			logger.Warn("resume yielded neither contact info nor skills",
				zap.String("file", resume.FileName),
			)
		}
		candidates.Append(match.BuildCandidate(resume, documents))
	}

	logger.Info("matching finished",
		zap.Int("candidates", candidates.Len()),
		zap.Int("positions", documents.Len()),
	)

	state := &runState{
		config:     config,
		documents:  documents,
		candidates: candidates,
		entries:    report.Build(candidates),
		fileCount:  len(resumeFiles),
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		for _, action := range []string{PromptShowReport, PromptExportCSV, PromptSaveHistory} {
			if err := handleAction(action, logger, state); err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, state); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, state *runState) error {
	switch action {
	case PromptShowReport:
		return report.WriteTable(os.Stdout, state.entries)
	case PromptExportCSV:
		filename := firstNonEmpty(viper.GetString("report-file"), state.config.ReportFile, defaultReportFile)
		if err := exportCSV(filename, state.entries); err != nil {
			return fmt.Errorf("exporting report: %w", err)
		}
		logger.Info("report exported", zap.String("filename", filename))
		return nil
	case PromptReportByPosition:
		pretty, _ := json.MarshalIndent(state.candidates.ReportByPosition(), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", state.candidates.Len()))
		return nil
	case PromptCandidatesToFile:
		filename, err := state.candidates.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump candidates to file: %w", err)
		}
		logger.Info("dumping candidates to file", zap.String("filename", filename))
		return nil
	case PromptSaveHistory:
		filename := firstNonEmpty(viper.GetString("history-file"), state.config.HistoryFile, defaultHistoryFile)
		if err := saveHistory(filename, state); err != nil {
			return fmt.Errorf("saving history: %w", err)
		}
		logger.Info("run saved to history", zap.String("filename", filename))
		return nil
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func exportCSV(filename string, entries []report.Entry) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return report.WriteCSV(file, entries)
}

func saveHistory(filename string, state *runState) error {
	stored, err := history.FromFile(filename)
	if err != nil {
		return err
	}

	stored.Append(history.NewEntry(state.documents.Len(), state.fileCount, state.entries))

	return stored.ToFile(filename)
}

// checkLimits refuses oversized uploads before any external call is made.
func checkLimits(jdFiles, resumeFiles []textract.File) error {
	if len(jdFiles) > maxJDCount {
		return fmt.Errorf("%d job description files exceed the limit of %d", len(jdFiles), maxJDCount)
	}
	if len(resumeFiles) > maxResumeCount {
		return fmt.Errorf("%d resume files exceed the limit of %d", len(resumeFiles), maxResumeCount)
	}
	if total := len(jdFiles) + len(resumeFiles); total > maxBatchSize {
		return fmt.Errorf("%d total files exceed the batch limit of %d", total, maxBatchSize)
	}
	return nil
}

func newFieldGuesser(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Guesser, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required under ai.gemini")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewGuesser(generator, logger, cfg.Gemini.MaxLogLength), nil
}

func progressLogger(logger *zap.Logger, what string) batch.ProgressFunc {
	return func(percent int) {
		logger.Debug("parsing progress",
			zap.String("files", what),
			zap.Int("percent", percent),
		)
	}
}

func reportBatch(logger *zap.Logger, what string, stats batch.Stats) {
	logger.Info(what+" parsed", zap.String("result", stats.Summary()))
	if stats.Failed > 0 {
		logger.Warn("some files could not be parsed",
			zap.String("files", what),
			zap.Int("failed", stats.Failed),
		)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
