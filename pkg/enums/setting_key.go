package enums

// SettingKey names the admin-managed settings rows.
type SettingKey string

const (
	SettingAdminPasswordHash SettingKey = "admin_password_hash"
	SettingWhatsAppNumber    SettingKey = "whatsapp_number"
	SettingBannerText        SettingKey = "banner_text"
	SettingCountdownDeadline SettingKey = "countdown_deadline"
	SettingStoreName         SettingKey = "store_name"
)

// PublicSettingKeys are the settings the storefront may read without admin auth.
var PublicSettingKeys = []SettingKey{
	SettingWhatsAppNumber,
	SettingBannerText,
	SettingCountdownDeadline,
	SettingStoreName,
}

func (k SettingKey) IsPublic() bool {
	for _, key := range PublicSettingKeys {
		if key == k {
			return true
		}
	}
	return false
}
