package handler

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 请求模型：调用方身份由请求体里的地址字段给出，
// 签名校验等认证工作由上游网关完成，不在本服务范围内。

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Creator               string   `json:"creator" binding:"required"`
	Name                  string   `json:"name" binding:"required"`
	Description           string   `json:"description"`
	FundingGoal           uint64   `json:"funding_goal" binding:"required"`
	DurationDays          int      `json:"duration_days" binding:"required"`
	MilestoneDescriptions []string `json:"milestone_descriptions" binding:"required"`
	MilestoneAmounts      []uint64 `json:"milestone_amounts" binding:"required"`
}

// FundProjectRequest 出资请求
type FundProjectRequest struct {
	Contributor string `json:"contributor" binding:"required"`
	Amount      uint64 `json:"amount" binding:"required"`
}

// CompleteMilestoneRequest 完成里程碑请求
type CompleteMilestoneRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// CancelProjectRequest 取消项目请求
type CancelProjectRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// ClaimRefundRequest 退款请求
type ClaimRefundRequest struct {
	Contributor string `json:"contributor" binding:"required"`
}

// SetTreasuryRequest 更换金库请求
type SetTreasuryRequest struct {
	Caller   string `json:"caller" binding:"required"`
	Treasury string `json:"treasury" binding:"required"`
}

// SetPlatformFeeRequest 调整费率请求
type SetPlatformFeeRequest struct {
	Caller string `json:"caller" binding:"required"`
	FeeBps uint64 `json:"fee_bps"`
}

// TransferOwnershipRequest 移交管理权请求
type TransferOwnershipRequest struct {
	Caller   string `json:"caller" binding:"required"`
	NewOwner string `json:"new_owner" binding:"required"`
}
