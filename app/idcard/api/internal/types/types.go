package types

// ==================== 身份证校验 ====================

// VerifyReq 单个号码校验请求
// idCard 为空也是合法请求，结果为 valid=false
type VerifyReq struct {
	IdCard string `json:"idCard,optional"`
}

// VerifyResp 单个号码校验结果
type VerifyResp struct {
	Valid  bool          `json:"valid"`
	Reason string        `json:"reason,omitempty"` // format / area_code / birth_date / check_code
	Detail *IdCardDetail `json:"detail,omitempty"`
}

// IdCardDetail 校验通过的号码拆分信息
type IdCardDetail struct {
	AreaCode string `json:"areaCode"`
	AreaName string `json:"areaName"`
	Birthday string `json:"birthday"` // YYYY-MM-DD
}

// BatchVerifyReq 批量校验请求，上限由 Batch.MaxSize 配置
type BatchVerifyReq struct {
	IdCards []string `json:"idCards,optional" validate:"min=1"`
}

// BatchVerifyItem 批量校验中的单条结果，顺序与请求一致
type BatchVerifyItem struct {
	Index  int    `json:"index"`
	IdCard string `json:"idCard"` // 脱敏后的号码
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// BatchVerifyResp 批量校验结果
type BatchVerifyResp struct {
	Total      int               `json:"total"`
	ValidCount int               `json:"validCount"`
	Results    []BatchVerifyItem `json:"results"`
}

// ==================== 地址码 ====================

// GetAreaReq 地址码查询请求
type GetAreaReq struct {
	Code string `path:"code" validate:"len=6,number"`
}

// GetAreaResp 地址码查询结果
type GetAreaResp struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
