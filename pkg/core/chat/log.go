package chat

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"content"`
}

// WelcomeText is the lead turn before any statement has been loaded.
const WelcomeText = "Chào bạn! Vui lòng tải lên Báo cáo Tài chính (Excel). Sau khi phân tích xong, tôi có thể trả lời các câu hỏi của bạn về dữ liệu đó."

// DataReadyText replaces the lead turn once an analysis is available.
const DataReadyText = "Tuyệt vời! Dữ liệu đã sẵn sàng. Bây giờ bạn có thể hỏi tôi bất kỳ điều gì về tình hình tài chính của doanh nghiệp này, ví dụ: 'Nhận xét về tốc độ tăng trưởng tài sản' hoặc 'Khả năng thanh toán hiện hành có thay đổi không?'"

// Log is an ordered, append-only conversation. The only mutation other
// than Append is the one-shot replacement of the lead turn.
type Log struct {
	turns []Turn
}

// NewLog starts a conversation with the welcome lead turn.
func NewLog() *Log {
	return &Log{turns: []Turn{{Role: RoleAssistant, Text: WelcomeText}}}
}

// Append adds a turn at the end.
func (l *Log) Append(t Turn) {
	l.turns = append(l.turns, t)
}

// Turns returns a copy of the conversation in order.
func (l *Log) Turns() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

func (l *Log) Len() int { return len(l.turns) }

// MarkDataReady swaps the lead turn's text to the data-ready prompt.
// The swap is keyed on the lead turn still holding the exact original
// welcome text, not on position, so a second upload or any other later
// state never gets overwritten. Returns whether the swap happened.
func (l *Log) MarkDataReady() bool {
	if len(l.turns) == 0 {
		return false
	}
	if l.turns[0].Role != RoleAssistant || l.turns[0].Text != WelcomeText {
		return false
	}
	l.turns[0].Text = DataReadyText
	return true
}
