package constants

const (
	ServiceName    = "post-admin-console"
	ServiceVersion = "0.1.0"

	// PageSize 列表固定每页条数，与博客后台 API 一致。
	PageSize = 10

	// TagNameMaxLength 标签名最大长度（按字符计）。
	TagNameMaxLength = 15

	// SubTitleMaxLength 自动生成的副标题最大长度（按字符计）。
	SubTitleMaxLength = 100

	// DefaultAdminContentsPath 头部搜索跳转的列表页路径。
	DefaultAdminContentsPath = "/admin/contents"

	DefaultHotTermsLimit = 10
	MaxHotTermsLimit     = 50
)

// 网关公共码表未覆盖的业务码。
const (
	ErrCodeUpstreamFailure   = 50201
	ErrCodeServiceNotEnabled = 50301
)
