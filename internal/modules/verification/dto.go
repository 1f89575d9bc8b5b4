package verification

import (
	"time"

	"qavat/internal/domain"
)

type SubmitRequest struct {
	AdID          int64  `json:"ad_id" binding:"required"`
	RequestReason string `json:"request_reason"`
}

type ProcessRequest struct {
	Status       string `json:"status" binding:"required"`
	AdminComment string `json:"admin_comment"`
}

type RequestResponse struct {
	ID            int64      `json:"id"`
	AdID          int64      `json:"ad_id"`
	RequestedBy   int64      `json:"requested_by"`
	ProcessedBy   *int64     `json:"processed_by,omitempty"`
	Status        string     `json:"status"`
	RequestReason string     `json:"request_reason,omitempty"`
	AdminComment  string     `json:"admin_comment,omitempty"`
	RequestedAt   time.Time  `json:"requested_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

func toRequestResponse(r *domain.GoldVerificationRequest) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		AdID:          r.AdID,
		RequestedBy:   r.RequestedBy,
		ProcessedBy:   r.ProcessedBy,
		Status:        string(r.Status),
		RequestReason: r.RequestReason,
		AdminComment:  r.AdminComment,
		RequestedAt:   r.RequestedAt,
		ProcessedAt:   r.ProcessedAt,
	}
}

func toRequestResponses(rs []domain.GoldVerificationRequest) []RequestResponse {
	out := make([]RequestResponse, 0, len(rs))
	for i := range rs {
		out = append(out, toRequestResponse(&rs[i]))
	}
	return out
}

// GoldAdResponse — объявление с золотой отметкой плюс персональная
// аннотация зрителя. Сама сущность Ad не мутируется.
type GoldAdResponse struct {
	Ad           domain.Ad          `json:"ad"`
	Gold         *domain.GoldStatus `json:"gold"`
	IsFavourited bool               `json:"is_favourited"`
}
