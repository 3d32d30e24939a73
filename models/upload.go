package models

type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// SignRequest carries the upload widget parameters to sign. Values may be
// strings or numbers.
type SignRequest struct {
	ParamsToSign map[string]any `json:"paramsToSign" binding:"required"`
}

type SignResponse struct {
	Signature string `json:"signature"`
}
