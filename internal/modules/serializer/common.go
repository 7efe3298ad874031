package serializer

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/planhub-io/planhub/internal/pkg/apperr"
)

var log = zap.NewNop()

// SetLogger installs the process logger for error reporting.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// WriteError maps an error to its HTTP status via the apperr taxonomy and
// writes the JSON envelope. Validation and state-transition failures keep
// their rule-specific message; everything else is reported as a storage
// error.
func WriteError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, Err(http.StatusBadRequest, err.Error(), nil))
	case apperr.KindStateTransition:
		c.JSON(http.StatusConflict, Err(http.StatusConflict, err.Error(), nil))
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, Err(http.StatusNotFound, err.Error(), nil))
	default:
		log.Sugar().Errorw("internal error", "err", err)
		c.JSON(http.StatusInternalServerError, DBErr("", err))
	}
}
