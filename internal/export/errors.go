package export

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Error represents a failure while rendering or storing an exported file.
type Error struct {
	Op      string
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("export %s %s: %s", e.Op, e.Path, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// describeS3Error names the S3 error code when the SDK reports one.
func describeS3Error(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return "bucket does not exist"
		case "AccessDenied", "Forbidden":
			return "access denied"
		case "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return "invalid credentials"
		default:
			return "S3 error " + apiErr.ErrorCode()
		}
	}
	return "upload failed"
}
