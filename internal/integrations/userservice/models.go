package userservice

import "time"

// User модель пользователя из UserService
// Содержит роль и организационную принадлежность, используемые
// гардами авторизации
type User struct {
	ID           int64         `json:"id"`
	Role         string        `json:"role"`
	CompanyID    *int64        `json:"company_id,omitempty"`
	HoldingID    *int64        `json:"holding_id,omitempty"`
	CompanyLinks []CompanyLink `json:"company_links,omitempty"`
}

// CompanyLink период принадлежности пользователя к компании
// EndDate == nil означает действующую принадлежность
type CompanyLink struct {
	CompanyID int64      `json:"company_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// LinkedToCompanyAt возвращает true, если на момент at пользователь
// принадлежал указанной компании
func (u *User) LinkedToCompanyAt(companyID int64, at time.Time) bool {
	for _, link := range u.CompanyLinks {
		if link.CompanyID != companyID {
			continue
		}
		if link.StartDate.After(at) {
			continue
		}
		if link.EndDate == nil || link.EndDate.After(at) {
			return true
		}
	}
	return false
}

// Holding модель холдинга из UserService
// Холдинг объединяет несколько компаний для скоупированного доступа
type Holding struct {
	ID         int64   `json:"id"`
	CompanyIDs []int64 `json:"company_ids"`
}

// HasCompany возвращает true, если компания входит в холдинг
func (h *Holding) HasCompany(companyID int64) bool {
	for _, id := range h.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
