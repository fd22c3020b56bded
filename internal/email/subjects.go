package email

const (
	subjectEstimateFmt         = "【Antares】お見積書をお送りします（%s）"
	subjectTeamNotificationFmt = "新規見積もりリクエスト（%s）"
)
