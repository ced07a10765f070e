package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/kraken/config"
	"github.com/lukehollenback/kraken/constants"
	"github.com/lukehollenback/kraken/exchange"
	"github.com/lukehollenback/kraken/exchange/kraken"
)

const (
	Name = "≪kraken-cli≫"
)

var (
	logger *log.Logger

	cfgAssets       *string
	cfgAssetClass   *string
	cfgTime         *bool
	cfgStatus       *bool
	cfgOHLC         *string
	cfgInterval     *string
	cfgBalance      *bool
	cfgTradeBalance *string
	cfgVerbose      *bool
)

func init() {
	//
	// Initialize the logger.
	//
	logger = log.New(log.Writer(), fmt.Sprintf(constants.LogPrefixFmt, Name), log.Ldate|log.Ltime|log.Lmsgprefix)

	//
	// Register configuration flags.
	//
	cfgAssets = flag.String("assets", "", "Comma-separated assets to show details of (e.g. \"XBT,ETH\"). Use \"all\" for every asset.")
	cfgAssetClass = flag.String("aclass", "", "Asset class to show details of (e.g. \"currency\").")
	cfgTime = flag.Bool("time", false, "Show the exchange's server time.")
	cfgStatus = flag.Bool("status", false, "Show the exchange's system status.")
	cfgOHLC = flag.String("ohlc", "", "Pair to show recent candles of (e.g. \"XBTUSD\").")
	cfgInterval = flag.String("interval", exchange.OneMinute.String(), "Candle interval for -ohlc (1m, 5m, 15m, 30m, 1h, 4h, 1d, 1w, 15d).")
	cfgBalance = flag.Bool("balance", false, "Show the account balance. Requires KRAKEN_API_KEY and KRAKEN_API_SECRET.")
	cfgTradeBalance = flag.String("trade-balance", "", "Show the trade balance valued in the provided asset. Requires credentials.")
	cfgVerbose = flag.Bool("v", false, "Log every request that is sent.")
}

func main() {
	flag.Parse()

	//
	// Cancel any in-flight request if the operating system asks us to stop.
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	//
	// Load configuration and build the client.
	//
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration. (Error: %s)", err)
	}

	opts, err := cfg.ClientOptions()
	if err != nil {
		logger.Fatalf("Failed to build the HTTP client. (Error: %s)", err)
	}

	if *cfgVerbose {
		opts = append(opts, kraken.WithLogger(logger))
	}

	client := kraken.NewClient(opts...)

	//
	// Run every command that was asked for, in a fixed order.
	//
	ran := false

	if *cfgStatus {
		ran = true
		showStatus(ctx, client)
	}

	if *cfgTime {
		ran = true
		showTime(ctx, client)
	}

	if *cfgAssets != "" || *cfgAssetClass != "" {
		ran = true
		showAssets(ctx, client)
	}

	if *cfgOHLC != "" {
		ran = true
		showCandles(ctx, client)
	}

	if *cfgBalance {
		ran = true
		showBalance(ctx, client)
	}

	if *cfgTradeBalance != "" {
		ran = true
		showTradeBalance(ctx, client)
	}

	if !ran {
		flag.Usage()
		os.Exit(2)
	}
}

//
// check aborts if the call failed outright, and prints the exchange's errors verbatim if the
// envelope was not successful. It returns whether or not there is a result to show.
//
func check[T any](what string, envelope *kraken.Envelope[T], err error) bool {
	if err != nil {
		logger.Fatalf("Failed to retrieve %s. (Error: %s)", what, err)
	}

	for _, msg := range envelope.Errors() {
		fmt.Println(aurora.Bold(aurora.Red(msg)))
	}

	return envelope.Success()
}

func showStatus(ctx context.Context, client *kraken.Client) {
	envelope, err := client.SystemStatus(ctx)
	if !check("system status", envelope, err) {
		return
	}

	status, _ := envelope.Result()

	colour := aurora.Green(status.Status)
	if status.Status != "online" {
		colour = aurora.Yellow(status.Status)
	}

	fmt.Printf("Status: %s (as of %s)\n", aurora.Bold(colour), status.Timestamp.Format(time.RFC3339))
}

func showTime(ctx context.Context, client *kraken.Client) {
	envelope, err := client.ServerTime(ctx)
	if !check("server time", envelope, err) {
		return
	}

	serverTime, _ := envelope.Result()

	fmt.Printf(
		"Server time: %s (local clock is %s off)\n",
		aurora.Bold(aurora.Cyan(serverTime.Time().Format(time.RFC3339))),
		time.Since(serverTime.Time()).Round(time.Second),
	)
}

func showAssets(ctx context.Context, client *kraken.Client) {
	var (
		envelope *kraken.Envelope[kraken.AssetInfoResponse]
		err      error
	)

	switch {
	case *cfgAssetClass != "":
		envelope, err = client.AssetClassInfo(ctx, *cfgAssetClass)
	case *cfgAssets == "all":
		envelope, err = client.AllAssetInfo(ctx)
	default:
		envelope, err = client.AssetInfo(ctx, strings.Split(*cfgAssets, ",")...)
	}

	if !check("asset info", envelope, err) {
		return
	}

	assets, _ := envelope.Result()

	for _, code := range sortedKeys(assets) {
		asset := assets[code]

		fmt.Printf(
			"%-10s %-8s %-10s decimals: %2d  status: %s\n",
			aurora.Bold(aurora.Blue(code)), asset.AltName, asset.AssetClass, asset.Decimals, asset.Status,
		)
	}
}

func showCandles(ctx context.Context, client *kraken.Client) {
	interval, ok := exchange.ParseInterval(*cfgInterval)
	if !ok {
		logger.Fatalf("Unknown candle interval %q.", *cfgInterval)
	}

	candles, err := client.RetrieveCandles(ctx, *cfgOHLC, interval, time.Time{})
	if err != nil {
		logger.Fatalf("Failed to retrieve candles. (Error: %s)", err)
	}

	for _, c := range candles {
		colour := aurora.Green
		if c.Close().LessThan(*c.Open()) {
			colour = aurora.Red
		}

		fmt.Println(colour(c))
	}
}

func showBalance(ctx context.Context, client *kraken.Client) {
	if !client.HasCredentials() {
		logger.Fatalf("The account balance requires both KRAKEN_API_KEY and KRAKEN_API_SECRET to be set.")
	}

	envelope, err := client.AccountBalance(ctx)
	if !check("account balance", envelope, err) {
		return
	}

	balances, _ := envelope.Result()

	for _, asset := range sortedKeys(balances) {
		fmt.Printf("%-10s %s\n", aurora.Bold(aurora.Blue(asset)), aurora.Green(balances[asset]))
	}
}

func showTradeBalance(ctx context.Context, client *kraken.Client) {
	envelope, err := client.TradeBalance(ctx, *cfgTradeBalance)
	if !check("trade balance", envelope, err) {
		return
	}

	balance, _ := envelope.Result()

	fmt.Printf("Equivalent balance: %s %s\n", aurora.Bold(aurora.Green(balance.EquivalentBalance)), *cfgTradeBalance)
	fmt.Printf("Trade balance:      %s\n", balance.TradeBalance)
	fmt.Printf("Equity:             %s\n", balance.Equity)
	fmt.Printf("Free margin:        %s\n", balance.FreeMargin)

	if balance.MarginLevel.Valid {
		fmt.Printf("Margin level:       %s%%\n", balance.MarginLevel.Decimal)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))

	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
