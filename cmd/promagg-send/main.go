package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/promagg/promagg"
	"github.com/promagg/promagg/internal/util"
	"github.com/promagg/promagg/pkg/client"
	"github.com/promagg/promagg/pkg/codec"
)

var (
	// BuildDate is the date when the binary was built.
	BuildDate string
	// GitCommit is the commit hash when the binary was built.
	GitCommit string
	// Version is the version of the binary.
	Version string
)

const (
	// ParamVerbose enables verbose logging.
	ParamVerbose = "verbose"
	// ParamJSON makes logger log in JSON format.
	ParamJSON = "json"
	// ParamConfigPath provides file with configuration.
	ParamConfigPath = "config-path"
	// ParamVersion makes program output its version.
	ParamVersion = "version"
	// ParamName is the metric name.
	ParamName = "name"
	// ParamValue is the metric value, parsed as an integer, a float, or kept as a string.
	ParamValue = "value"
	// ParamLabel is a key:value label, may be repeated.
	ParamLabel = "label"
	// ParamDryRun prints the payload instead of sending it.
	ParamDryRun = "dry-run"
)

func main() {
	v, version, err := setupConfiguration(os.Args[1:])
	if err != nil {
		if err == pflag.ErrHelp {
			return
		}
		logrus.Fatalf("Error while parsing configuration: %v", err)
	}
	if version {
		fmt.Printf("Version: %s - Commit: %s - Date: %s\n", Version, GitCommit, BuildDate)
		return
	}
	if err := run(v, os.Stdout); err != nil {
		logrus.Fatalf("%v", err)
	}
}

func run(v *viper.Viper, out io.Writer) error {
	name := v.GetString(ParamName)
	if name == "" {
		return errors.New("--" + ParamName + " is required")
	}
	value := promagg.ParseValue(v.GetString(ParamValue))
	labels := promagg.ParseLabels(promagg.Tags(v.GetStringSlice(ParamLabel)))

	if v.GetBool(ParamDryRun) {
		return dryRun(client.SettingsFromViper(v), promagg.NewObservation(name, value, labels), out)
	}

	c, err := client.NewFromViper(v, client.WithLogger(logrus.StandardLogger()))
	if err != nil {
		return err
	}
	if err := c.Send(name, value, labels); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"name":   name,
		"value":  value,
		"labels": labels.String(),
	}).Debug("sent observation")
	return nil
}

// dryRun builds the payload the client would send and prints what the aggregator would decode.
func dryRun(settings client.Settings, o *promagg.Observation, out io.Writer) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	payload, err := codec.JSONEncoder{}.Encode(o)
	if err != nil {
		return err
	}
	if settings.Compressed() {
		if payload, err = (codec.GzipCompressor{}).Compress(payload, settings.CompressionLevel); err != nil {
			return err
		}
	}
	decoded, err := codec.Decode(payload)
	if err != nil {
		return err
	}
	raw, err := codec.JSONEncoder{}.Encode(decoded)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s %d bytes compressed=%t %s\n", settings.Address(), len(payload), codec.IsCompressed(payload), raw)
	return err
}

func setupConfiguration(args []string) (*viper.Viper, bool, error) {
	v := viper.New()
	defer setupLogger(v) // Apply logging configuration in case of early exit
	util.InitViper(v)

	var version bool

	cmd := pflag.NewFlagSet("promagg-send", pflag.ContinueOnError)

	cmd.BoolVar(&version, ParamVersion, false, "Print the version and exit")
	cmd.Bool(ParamVerbose, false, "Verbose")
	cmd.Bool(ParamJSON, false, "Log in JSON format")
	cmd.String(ParamConfigPath, "", "Path to the configuration file")
	cmd.String(ParamName, "", "Metric name")
	cmd.String(ParamValue, "1", "Metric value")
	labels := cmd.StringArray(ParamLabel, nil, "Label in key:value form, may be repeated")
	cmd.Bool(ParamDryRun, false, "Print the payload instead of sending it")

	promagg.AddFlags(cmd)

	cmd.VisitAll(func(flag *pflag.Flag) {
		if flag.Name == ParamLabel {
			return // Viper reads string arrays back as a single bracketed string
		}
		if err := v.BindPFlag(flag.Name, flag); err != nil {
			panic(err) // Should never happen
		}
	})

	if err := cmd.Parse(args); err != nil {
		return nil, false, err
	}
	if cmd.Changed(ParamLabel) {
		v.Set(ParamLabel, *labels)
	}

	configPath := v.GetString(ParamConfigPath)
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, false, err
		}
	}

	return v, version, nil
}

func setupLogger(v *viper.Viper) {
	if v.GetBool(ParamVerbose) {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if v.GetBool(ParamJSON) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
