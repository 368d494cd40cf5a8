package load

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate 校验器单例
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// 报错时使用描述文件中的字段名
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
}

// componentHead 元件类型判别
type componentHead struct {
	Type string `yaml:"type" validate:"required"`
}

// field 读取元件字段, 字段必须存在, 文本字段不能为空
func field(node *yaml.Node, key string, out any) error {
	value := mappingValue(node, key)
	if value == nil || isNull(value) {
		return fmt.Errorf("missing field %q", key)
	}
	if err := value.Decode(out); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	if text, ok := out.(*string); ok {
		if err := validate.Var(*text, "required"); err != nil {
			return fmt.Errorf("missing field %q", key)
		}
	}
	return nil
}

// formatValidationError 转换校验错误
func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("missing field %q", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %q failed %q", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
