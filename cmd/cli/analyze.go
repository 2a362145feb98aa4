package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"finanalyst/pkg/core/agent"
	"finanalyst/pkg/core/chat"
	"finanalyst/pkg/core/loader"
	"finanalyst/pkg/core/metrics"
	"finanalyst/pkg/core/report"
	"finanalyst/pkg/core/responder"
)

var (
	flagChat         bool
	flagModelsConfig string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Phân tích một file Báo cáo Tài chính (xlsx hoặc bảng HTML)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", args[0], err)
		}
		defer f.Close()

		rows, err := loader.ParseUpload(f)
		if err != nil {
			return err
		}

		engine := metrics.NewEngine(logger)
		analysis, err := engine.Analyze(rows)
		if err != nil {
			return err
		}

		printAnalysis(analysis)

		if flagChat {
			return chatLoop(logger, report.Serialize(analysis))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagChat, "chat", false, "hỏi đáp tương tác sau khi phân tích")
	analyzeCmd.Flags().StringVar(&flagModelsConfig, "models-config", "config/models.yaml", "đường dẫn cấu hình nhà cung cấp mô hình")
	rootCmd.AddCommand(analyzeCmd)
}

func printAnalysis(analysis *metrics.Analysis) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Chỉ tiêu\tNăm trước\tNăm sau\tTăng trưởng\tTỷ trọng N-1\tTỷ trọng N")
	for _, row := range report.FormatTable(analysis.Rows) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Label, row.Prior, row.Current, row.Growth, row.PriorShare, row.CurrentShare)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("Chỉ số Thanh toán Hiện hành (Năm trước):", report.FormatRatio(analysis.Liquidity.Prior))
	fmt.Println("Chỉ số Thanh toán Hiện hành (Năm sau):  ", report.FormatCurrentRatioWithDelta(analysis.Liquidity))
}

func chatLoop(logger zerolog.Logger, serialized string) error {
	cfg := agent.Config{ActiveProvider: "gemini"}
	if data, err := os.ReadFile(flagModelsConfig); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logger.Warn().Err(err).Msg("provider config unreadable, using defaults")
		}
	}
	mgr := agent.NewManager(cfg)
	rsp := responder.New(mgr.Active(), logger)

	fmt.Println()
	fmt.Println(chat.DataReadyText)
	fmt.Println("(gõ 'exit' để thoát)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}

		answer := rsp.Respond(context.Background(), serialized, question, os.Getenv(responder.CredentialKey))
		fmt.Println()
		fmt.Println(answer)
		fmt.Println()
	}
}
