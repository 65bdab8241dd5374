package cmd

import (
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebay-lister/api/openapi"
)

var openapiFormat string

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI document",
	Long:  "Prints the API's OpenAPI 3.1 document without connecting to the database.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		api := newAPI(echo.New())
		registerRoutes(api, nil, nil)
		return openapi.Write(cmd.OutOrStdout(), api, openapiFormat)
	},
}

func init() {
	openapiCmd.Flags().StringVar(&openapiFormat, "format", "yaml", "output format (json, yaml)")
}
