package onesignal

import "pushcron/internal/domain/model"

var platformFlags = []struct {
	platform model.Platform
	key      string
}{
	{model.PlatformAndroid, "isAndroid"},
	{model.PlatformIOS, "isIos"},
	{model.PlatformWeb, "isAnyWeb"},
	{model.PlatformHuawei, "isHuawei"},
	{model.PlatformAmazon, "isAdm"},
	{model.PlatformChrome, "isChrome"},
	{model.PlatformFirefox, "isFirefox"},
	{model.PlatformSafari, "isSafari"},
	{model.PlatformWindows, "isWP_WNS"},
}

// BuildPayload renders the create-notification request body.
func BuildPayload(appID string, n model.Notification) map[string]any {
	segment := n.Segment
	if segment == "" {
		segment = model.DefaultSegment
	}

	payload := map[string]any{
		"app_id":            appID,
		"contents":          map[string]string{"en": n.Message},
		"headings":          map[string]string{"en": n.Heading},
		"included_segments": []string{segment},
	}

	for _, flag := range platformFlags {
		payload[flag.key] = n.Targets(flag.platform)
	}

	if n.ShowRateButton {
		payload["buttons"] = []map[string]string{
			{"id": "rate", "text": "Rate"},
		}
	}
	if n.URL != "" {
		payload["url"] = n.URL
	}
	if len(n.Data) > 0 {
		payload["data"] = n.Data
	}
	// big_picture is an Android-only field.
	if n.BigPicture != "" && n.Targets(model.PlatformAndroid) {
		payload["big_picture"] = n.BigPicture
	}
	if n.Name != "" {
		payload["name"] = n.Name
	}

	return payload
}
