package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "finanalyst",
	Short: "Phân tích Báo cáo Tài chính và hỏi đáp AI",
	Long:  "finanalyst đọc một Báo cáo Tài chính (Chỉ tiêu | Năm trước | Năm sau), tính tăng trưởng, tỷ trọng và chỉ số thanh toán hiện hành, và trả lời câu hỏi dựa trên dữ liệu đó.",
}

func main() {
	godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
