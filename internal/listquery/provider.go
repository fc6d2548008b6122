package listquery

import (
	"context"

	"github.com/Xushengqwer/post_admin/internal/models"
)

// Envelope 数据源返回的原始分页负载（JSON），结构不固定，由 Normalize 归一化。
type Envelope []byte

// Provider 远端列表数据源。实现方负责自己的重试与超时。
type Provider interface {
	ListPage(ctx context.Context, page int) (Envelope, error)
	SearchPage(ctx context.Context, searchType models.SearchType, query string, page int) (Envelope, error)
	DeleteItem(ctx context.Context, id int64) error
}

// Prompter 删除前的确认与失败提示。
type Prompter interface {
	Confirm(ctx context.Context, message string) bool
	Alert(ctx context.Context, message string)
}

// StaticPrompter 以固定答案回应确认，并记录最后一次提示内容。HTTP 接口用它承接 confirm 参数。
type StaticPrompter struct {
	Answer    bool
	LastAlert string
}

func (p *StaticPrompter) Confirm(context.Context, string) bool { return p.Answer }

func (p *StaticPrompter) Alert(_ context.Context, message string) { p.LastAlert = message }
