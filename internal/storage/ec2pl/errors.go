package ec2pl

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/domain"
)

var ErrEmptyListID = errors.New("empty prefix list id")

// Коды ошибок EC2 API, которые мы различаем.
const (
	codeVersionMismatch = "PrefixListVersionMismatch"
	codeListNotFound    = "InvalidPrefixListID.NotFound"
)

// classifyErr переводит ошибки AWS SDK в доменные sentinel-ошибки.
// Конфликт версий и отсутствие списка интересуют вызывающего,
// всё остальное остаётся generic remote-ошибкой.
func classifyErr(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case codeVersionMismatch:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrVersionConflict, apiErr.ErrorMessage())
		case codeListNotFound:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrListNotFound, apiErr.ErrorMessage())
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
