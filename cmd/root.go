package cmd

import (
	"fmt"
	"os"

	"github.com/chrisdamba/foodiebot/internal/bot"
	"github.com/chrisdamba/foodiebot/internal/models"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "foodiebot",
	Short: "Conversational fast food recommender",
	Long:  `foodiebot is a CLI tool that recommends fast food items from free-text input, tracks a running interest score per conversation, and exports turn analytics to files, Kafka or Postgres.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		b := bot.NewBot(cfg)
		b.Run()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().Int("recommendation-limit", models.DefaultRecommendationLimit, "Maximum number of items per recommendation")
	rootCmd.Flags().String("catalog-file", "", "JSON catalog file (default is the built-in catalog)")
	rootCmd.Flags().Int("seed-batch-size", models.DefaultSeedBatchSize, "Batch size for catalog seeding")
	rootCmd.Flags().String("session-id", "", "Session ID (generated when empty)")
	rootCmd.Flags().String("message", "", "Process a single message instead of starting the prompt")
	rootCmd.Flags().Bool("postgres-enabled", false, "Use Postgres for the catalog and conversation log")
	rootCmd.Flags().Bool("kafka-enabled", false, "Enable Kafka output")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("output-format", "", "Output file format (parquet, json, csv)")
	rootCmd.Flags().String("output-path", "", "Output file path (if not using Kafka)")
	rootCmd.Flags().String("output-folder", "output", "Output folder name")
	rootCmd.Flags().String("output-destination", "local", "Output destination (local, s3, postgres)")

	viper.BindPFlags(rootCmd.Flags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
