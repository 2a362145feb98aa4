package responder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"finanalyst/pkg/core/llm"
	"finanalyst/pkg/core/utils"
)

// CredentialKey is the environment variable holding the API secret.
const CredentialKey = "GEMINI_API_KEY"

// MissingCredentialText is returned verbatim when no credential is
// configured. The remote call is never attempted in that case.
const MissingCredentialText = "Lỗi: Không tìm thấy Khóa API. Vui lòng cấu hình Khóa '" + CredentialKey + "' trong biến môi trường."

// NoDataPlaceholder stands in for the serialized context before any
// statement has been analyzed.
const NoDataPlaceholder = "(Chưa có dữ liệu phân tích. Hãy đề nghị người dùng tải lên Báo cáo Tài chính trước.)"

const promptTemplate = `Bạn là một chuyên gia phân tích tài chính chuyên nghiệp. Nhiệm vụ của bạn là trả lời các câu hỏi của người dùng một cách chính xác, chuyên nghiệp và CHỈ DỰA TRÊN DỮ LIỆU TÀI CHÍNH đã được phân tích sau đây.

**Dữ liệu Phân tích:**
%s

**Câu hỏi của người dùng:** %s

Hãy trả lời bằng Tiếng Việt.`

// Responder turns a question plus the serialized analysis context into
// an assistant message. Every failure path is converted to displayable
// text, never an error: the result is appended to the conversation log
// unconditionally.
type Responder struct {
	provider llm.Provider
	logger   zerolog.Logger
}

func New(provider llm.Provider, logger zerolog.Logger) *Responder {
	return &Responder{provider: provider, logger: logger}
}

// Respond builds one grounded prompt and issues a single completion
// call. No retry, no streaming; a hang blocks only this turn.
func (r *Responder) Respond(ctx context.Context, serialized string, question string, apiKey string) string {
	if strings.TrimSpace(apiKey) == "" {
		return MissingCredentialText
	}

	contextBlock := serialized
	if contextBlock == "" {
		contextBlock = NoDataPlaceholder
	}
	prompt := fmt.Sprintf(promptTemplate, contextBlock, question)

	answer, err := r.provider.GenerateResponse(ctx, prompt, "", map[string]interface{}{"api_key": apiKey})
	if err != nil {
		r.logger.Error().Err(err).Msg("completion call failed")
		if isProviderError(err) {
			return fmt.Sprintf("Lỗi gọi Gemini API: Vui lòng kiểm tra Khóa API hoặc giới hạn sử dụng. Chi tiết lỗi: %v", err)
		}
		return fmt.Sprintf("Đã xảy ra lỗi không xác định: %v", err)
	}

	return utils.CleanMarkdown(answer)
}

// isProviderError distinguishes an error reported by the API (quota,
// auth, malformed request) from transport-level failures, whichever
// backend produced it.
func isProviderError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return true
	}
	var statusErr *llm.APIStatusError
	return errors.As(err, &statusErr)
}
