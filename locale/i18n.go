package locale

import (
	"embed"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Strmap map[string]interface{}

//go:embed *.yaml
var localesFS embed.FS
var lang *i18n.Localizer

func load_language(bundle *i18n.Bundle, tag language.Tag) error {
	logrus.Debugf("Using Language %s", tag.String())
	_, err := bundle.LoadMessageFileFS(localesFS, fmt.Sprintf("%s.yaml", tag.String()))
	return err
}

func init() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	if err := load_language(bundle, language.English); err != nil {
		panic("failed to load english language")
	}

	defaultTag := language.English
	if languageName := getLanguageName(); languageName != "" {
		tag, err := language.Parse(languageName)
		if err != nil {
			logrus.Warn("failed to parse language name")
		} else {
			base, _ := tag.Base()
			defaultTag = language.Make(base.String())
		}
	}

	if defaultTag != language.English {
		if err := load_language(bundle, defaultTag); err != nil {
			logrus.Debugf("Couldnt load Language %s", defaultTag)
		}
	}

	lang = i18n.NewLocalizer(bundle, defaultTag.String(), language.English.String())
}

func Loc(id string, tmpl Strmap) string {
	s, err := lang.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: tmpl,
	})
	if err != nil {
		return fmt.Sprintf("failed to translate! %s", id)
	}
	return s
}
