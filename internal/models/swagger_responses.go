package models

// 以下结构只用于 swagger 文档，swag 无法解析泛型的 response.APIResponse[T]。

type SwaggerViewResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    ViewResponse `json:"data,omitempty"`
}

type SwaggerContentResponse struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Data    Content `json:"data,omitempty"`
}

type SwaggerTagResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    Tag    `json:"data,omitempty"`
}

type SwaggerHotSearchTermsResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    []HotSearchTerm `json:"data,omitempty"`
}

type SwaggerErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type SwaggerHealthCheckResponse struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
