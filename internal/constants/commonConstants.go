package constants

type (
	RequestSource string
	APIStatus     string
	DatasetSource string
)

const (
	RequestSourceAPI       RequestSource = "API"
	RequestSourceDashboard RequestSource = "DASHBOARD"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	DatasetSourceUpload    DatasetSource = "upload"
	DatasetSourceSynthetic DatasetSource = "synthetic"
)
