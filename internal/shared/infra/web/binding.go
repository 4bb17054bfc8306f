package web

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/davicafu/hexaplaces/internal/shared/platform/query"
	"github.com/davicafu/hexaplaces/pkg/utils"
)

// Traductor de los mensajes del validador de gin.
var bindTranslator ut.Translator

// Los errores de binding usan el nombre JSON del campo y mensajes en inglés.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonName)
	trans, err := query.RegisterTranslations(v)
	if err != nil {
		panic(err)
	}
	bindTranslator = trans
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Bind enlaza el cuerpo (JSON o formulario según Content-Type) en dest.
// Si falla responde 422 con el detalle de validación o 400 si el cuerpo no se puede leer.
func Bind(c *gin.Context, dest interface{}) bool {
	err := c.ShouldBind(dest)
	if err == nil {
		return true
	}
	if report, ok := query.FromValidationErrors(err, bindTranslator); ok {
		utils.SendUnprocessable(c, "Invalid request body", report)
		return false
	}
	utils.SendBadRequest(c, "invalid request body: "+err.Error())
	c.Abort()
	return false
}
