package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// sustainableUniverse is the default suggestion set of tickers for
// sustainability-minded investors.
var sustainableUniverse = []string{
	"AAPL", "MSFT", "TSLA", "NVDA", "GOOGL", "ADBE", "AMZN", "NFLX", "INTC", "CSCO",
	"PEP", "QCOM", "HON", "BA", "SBUX", "ORCL", "IBM", "CRM", "PYPL", "GILD",
	"TXN", "AVGO", "AMGN", "AMD", "ADI", "INTU", "VRTX", "MU", "BKNG", "MCHP",
	"SWKS", "LRCX", "KLAC", "CDNS", "SNPS", "XLNX", "IDXX", "ASML", "MRVL", "ANSS",
	"MTCH", "WDAY", "OKTA", "TEAM", "ZS", "NOW", "PINS", "TTD", "ZM", "CRWD",
	"DOCU", "FSLY", "DDOG", "FVRR", "NET", "SHOP", "SPOT", "SQ", "TWLO", "UBER",
	"LYFT", "ABNB", "ROKU", "SNAP", "BIDU", "NTES", "JD", "PDD", "BABA", "VIPS",
	"SPCE", "PLTR", "U", "NVTA", "BNTX", "MRNA", "TWST", "PACB", "CRSP", "NTLA",
	"EDIT", "REGN", "DXCM", "TDOC", "ISRG", "SYK", "EW", "ABT", "ILMN",
	"RMD", "STE", "ALGN", "TFX", "ZBH", "DHR", "BSX", "BAX", "BHC", "WST",
}

var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "List the suggested sustainable ticker universe",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Top sustainable companies:")
		fmt.Println(strings.Join(sustainableUniverse, ", "))
	},
}

func init() {
	rootCmd.AddCommand(universeCmd)
}
