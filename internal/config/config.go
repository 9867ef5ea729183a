// Package config carrega as configurações do serviço a partir de variáveis
// de ambiente com o prefixo LAYOUT_ (ex.: LAYOUT_PORT, LAYOUT_SHEET).
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Settings reúne os parâmetros operacionais do serviço.
type Settings struct {
	Port         string `envconfig:"PORT" default:"8084"`
	Sheet        string `envconfig:"SHEET" default:"Layout"`
	ResumoSheet  string `envconfig:"RESUMO_SHEET" default:"Resumo por Conta"`
	HeaderWindow int    `envconfig:"HEADER_WINDOW" default:"20"`
	MetaWindow   int    `envconfig:"META_WINDOW" default:"3"`
	SerialMin    int    `envconfig:"SERIAL_MIN" default:"35000"`
	SerialMax    int    `envconfig:"SERIAL_MAX" default:"47000"`
}

// Load processa as variáveis de ambiente e devolve as configurações.
func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process("layout", &s); err != nil {
		return Settings{}, fmt.Errorf("erro ao carregar configuração: %w", err)
	}
	return s, nil
}

// Default devolve as configurações padrão sem consultar o ambiente.
func Default() Settings {
	return Settings{
		Port:         "8084",
		Sheet:        "Layout",
		ResumoSheet:  "Resumo por Conta",
		HeaderWindow: 20,
		MetaWindow:   3,
		SerialMin:    35000,
		SerialMax:    47000,
	}
}
