package image

type (
	Uploaded struct {
		Filename     string `json:"filename"`
		Path         string `json:"path"`
		OriginalName string `json:"originalName"`
		Size         int64  `json:"size"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		Format       string `json:"format"`
	}
	Resized struct {
		Original string `json:"original"`
		Resized  string `json:"resized"`
		Width    int    `json:"width"`
		Height   int    `json:"height"`
		Format   string `json:"format"`
		Size     int64  `json:"size"`
	}
)
