// api/model/team.go
package model

type Team struct {
	TeamID         string `json:"team_id" yaml:"teamId"`
	TeamName       string `json:"team_name" yaml:"teamName"`
	TeamLogo       string `json:"team_logo" yaml:"teamLogo"`
	Abbreviation   string `json:"abbreviation" yaml:"abbreviation"`
	PrimaryColor   string `json:"primary_color" yaml:"primaryColor"`
	SecondaryColor string `json:"secondary_color,omitempty" yaml:"secondaryColor"`
	Conference     string `json:"conference,omitempty" yaml:"conference"`
	Division       string `json:"division,omitempty" yaml:"division"`
	City           string `json:"city,omitempty" yaml:"city"`
	Stadium        string `json:"stadium,omitempty" yaml:"stadium"`
}
