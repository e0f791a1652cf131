package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMemberRequest struct {
	Name      string  `json:"name"       validate:"required,min=2,max=120"`
	Nickname  *string `json:"nickname"   validate:"omitempty,max=60"`
	CPF       string  `json:"cpf"        validate:"required,len=11,numeric"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	BloodType *string `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	JoinDate  string  `json:"join_date"  validate:"omitempty,datetime=2006-01-02"`
	Status    string  `json:"status"     validate:"omitempty,oneof=ativo inativo licenciado"`
}

type UpdateMemberRequest struct {
	Name      *string `json:"name"       validate:"omitempty,min=2,max=120"`
	Nickname  *string `json:"nickname"   validate:"omitempty,max=60"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	BloodType *string `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Status    *string `json:"status"     validate:"omitempty,oneof=ativo inativo licenciado"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type MemberFilter struct {
	Name   string `form:"name"`
	Status string `form:"status"` // ativo | inativo | licenciado | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MemberResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Nickname  *string `json:"nickname"`
	CPF       string  `json:"cpf"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	BloodType *string `json:"blood_type"`
	JoinDate  string  `json:"join_date"`
	Status    string  `json:"status"`
}

type MemberListResponse struct {
	Data  []MemberResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
