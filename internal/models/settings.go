package models

// AppSettings is the singleton settings record.
type AppSettings struct {
	WelcomeMessage string `json:"welcomeMessage"`
}

// UpdateSettingsRequest overwrites the settings record.
type UpdateSettingsRequest struct {
	WelcomeMessage string `json:"welcomeMessage" validate:"required"`
}

// WelcomeBanner is shown once on the login screen and dismissed by the client.
type WelcomeBanner struct {
	Message        string `json:"message"`
	DismissAfterMs int64  `json:"dismissAfterMs"`
}
