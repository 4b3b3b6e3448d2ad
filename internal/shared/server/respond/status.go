package respond

// Status is a response code and its default message.
type Status struct {
	Code    int
	Message string
}

// Success statuses.
var (
	ImageUpload = Status{2000, "Successfully generated the image url."}
	ImageDelete = Status{2001, "Successfully deleted the image."}
	FileUpload  = Status{2002, "Successfully uploaded file(s)"}
	FileSummary = Status{2003, "Successfully returned file list."}
	DeleteFile  = Status{2004, "Successfully deleted the file"}
	UpdateFile  = Status{2005, "Successfully updated the file"}
	FileDetail  = Status{2006, "Successfully returned the file detail."}
)

// Error statuses.
var (
	MissingRequiredFields = Status{4000, "Required fields are missing"}
	InvalidImageType      = Status{4901, "Invalid image type"}
	ExceededImageSize     = Status{4902, "Image exceeded maximum byte size"}
	InvalidImageURL       = Status{4903, "Invalid image url"}
	UnsupportedFileFormat = Status{4014, "Unsupported file format"}
	ExceededFileSize      = Status{4905, "File exceeded maximum byte size"}
	InvalidUploadName     = Status{4906, "Unsupported image name."}
	MaxFileCount          = Status{4015, "Maximum file count exceeded."}
	UnsupportedFileType   = Status{4016, "Unsupported file option."}
	InvalidFileID         = Status{4017, "Invalid file Id"}
	InvalidPagination     = Status{4018, "Invalid page or page size"}
	RateLimited           = Status{4029, "Too many requests"}
	InternalServerError   = Status{5000, "Failed due to an internal server error"}
)
