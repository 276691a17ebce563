package dto

// CreateUserRequest carries a user creation payload
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// UpdateUserRequest carries a user patch; absent fields are left alone
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *string `json:"role"`
}

// ListUsersRequest filters the user listing
type ListUsersRequest struct {
	ListRequest
	Keyword string `form:"keyword"`
	Role    string `form:"role"`
}

// TelegramChatRequest links a Telegram chat to the caller's account
type TelegramChatRequest struct {
	ChatID string `json:"chat_id" binding:"required"`
}

// TelegramChatResponse reports the caller's Telegram link state.
// The chat ID is only ever shown to its owner.
type TelegramChatResponse struct {
	ChatID      string `json:"telegram_chat_id"`
	HasTelegram bool   `json:"has_telegram"`
}
