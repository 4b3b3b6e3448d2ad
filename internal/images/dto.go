package images

// ImageResponse describes an uploaded image, or a rejected one when ImageURL is empty.
type ImageResponse struct {
	ImageURL      *string `json:"imageUrl"`
	ContentType   string  `json:"contentType"`
	ImageByteSize int64   `json:"imageByteSize"`
}

type deleteRequest struct {
	ImageURL string `json:"imageUrl"`
}
