// Package catalog holds the static pricing catalog: the priceable dimensions
// of a project (system type, scale, features, timeline) and their rates.
// The tables are process-wide constants, loaded once and never mutated.
package catalog

// SystemType is a kind of system with a base development cost in yen.
type SystemType struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	BaseCost int64  `json:"baseCost"`
}

// Scale multiplies the base cost by project size.
type Scale struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Factor      float64 `json:"factor"`
}

// Feature is an optional capability with a flat cost in yen.
type Feature struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Cost  int64  `json:"cost"`
}

// Timeline adjusts the subtotal for delivery urgency.
type Timeline struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description,omitempty"`
	Factor      float64 `json:"factor"`
}

// SystemTypes lists every priceable system type.
var SystemTypes = []SystemType{
	{ID: "web_app", Label: "Webアプリ", BaseCost: 1_000_000},
	{ID: "business_system", Label: "業務システム", BaseCost: 1_500_000},
	{ID: "mobile_app", Label: "モバイルアプリ", BaseCost: 1_200_000},
	{ID: "lp_website", Label: "LP / Webサイト", BaseCost: 400_000},
	{ID: "other", Label: "その他", BaseCost: 800_000},
}

// Scales lists every project scale.
var Scales = []Scale{
	{ID: "small", Label: "小規模", Description: "シンプルな機能のみ", Factor: 1.0},
	{ID: "medium", Label: "中規模", Description: "複数の主要機能あり", Factor: 2.0},
	{ID: "large", Label: "大規模", Description: "多機能・複雑な要件", Factor: 3.5},
	{ID: "enterprise", Label: "エンタープライズ", Description: "大規模・高可用性要件", Factor: 6.0},
}

// Features lists every optional feature.
var Features = []Feature{
	{ID: "auth", Label: "ユーザー認証", Cost: 200_000},
	{ID: "payment", Label: "決済機能", Cost: 400_000},
	{ID: "admin", Label: "管理画面", Cost: 300_000},
	{ID: "notification", Label: "通知機能", Cost: 150_000},
	{ID: "search", Label: "検索機能", Cost: 200_000},
	{ID: "analytics", Label: "分析ダッシュボード", Cost: 350_000},
	{ID: "chat", Label: "チャット・メッセージ", Cost: 300_000},
	{ID: "file_upload", Label: "ファイルアップロード", Cost: 150_000},
	{ID: "api_integration", Label: "外部API連携", Cost: 250_000},
	{ID: "multilingual", Label: "多言語対応", Cost: 200_000},
}

// Timelines lists every delivery timeline.
var Timelines = []Timeline{
	{ID: "asap", Label: "なるべく早く", Description: "最短納期", Factor: 1.3},
	{ID: "1month", Label: "1ヶ月以内", Factor: 1.1},
	{ID: "3months", Label: "3ヶ月以内", Factor: 1.0},
	{ID: "6months", Label: "6ヶ月以内", Factor: 0.9},
	{ID: "flexible", Label: "柔軟に対応可能", Description: "スケジュール調整可", Factor: 0.85},
}

var (
	systemTypeIndex = indexByID(SystemTypes, func(s SystemType) string { return s.ID })
	scaleIndex      = indexByID(Scales, func(s Scale) string { return s.ID })
	featureIndex    = indexByID(Features, func(f Feature) string { return f.ID })
	timelineIndex   = indexByID(Timelines, func(t Timeline) string { return t.ID })
)

func indexByID[T any](entries []T, id func(T) string) map[string]T {
	index := make(map[string]T, len(entries))
	for _, entry := range entries {
		index[id(entry)] = entry
	}
	return index
}

// SystemTypeByID looks up a system type. A false result is a hard validation
// failure for callers, never a zero-cost default.
func SystemTypeByID(id string) (SystemType, bool) {
	entry, ok := systemTypeIndex[id]
	return entry, ok
}

// ScaleByID looks up a scale.
func ScaleByID(id string) (Scale, bool) {
	entry, ok := scaleIndex[id]
	return entry, ok
}

// FeatureByID looks up a feature.
func FeatureByID(id string) (Feature, bool) {
	entry, ok := featureIndex[id]
	return entry, ok
}

// TimelineByID looks up a timeline.
func TimelineByID(id string) (Timeline, bool) {
	entry, ok := timelineIndex[id]
	return entry, ok
}
