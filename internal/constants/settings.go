package constants

const (
	SettingTimezone       = "timezone"
	SettingHorizonDays    = "horizon_days"
	SettingCancelPolicy   = "cancel_policy"
	SettingViewerTemplate = "viewer_template"

	CancelPolicyAnyone = "anyone"
	CancelPolicyOwner  = "owner"

	// Default Settings Values
	DefaultTimezone       = "Asia/Taipei"
	DefaultHorizonDays    = 14
	DefaultCancelPolicy   = CancelPolicyAnyone
	DefaultViewerTemplate = ""
)
