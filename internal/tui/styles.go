package tui

import "github.com/rgehrsitz/rxdash/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	ColorPrimary = tuistyles.ColorPrimary
	ColorMuted   = tuistyles.ColorMuted
	ColorBorder  = tuistyles.ColorBorder

	AppStyle          = tuistyles.AppStyle
	TitleStyle        = tuistyles.TitleStyle
	SubtitleStyle     = tuistyles.SubtitleStyle
	StatusBarStyle    = tuistyles.StatusBarStyle
	StatusKeyStyle    = tuistyles.StatusKeyStyle
	BorderStyle       = tuistyles.BorderStyle
	ActiveBorderStyle = tuistyles.ActiveBorderStyle
	TabStyle          = tuistyles.TabStyle
	ActiveTabStyle    = tuistyles.ActiveTabStyle
	SelectedItemStyle = tuistyles.SelectedItemStyle
	MetricLabelStyle  = tuistyles.MetricLabelStyle
	ErrorStyle        = tuistyles.ErrorStyle
	InfoStyle         = tuistyles.InfoStyle
	NoticeStyle       = tuistyles.NoticeStyle
)
