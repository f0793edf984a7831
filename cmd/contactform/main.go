package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/badr-lol/contact-relay/internal/form"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	flagEndpoint string
	flagToken    string
	flagName     string
	flagEmail    string
	flagSubject  string
	flagMessage  string
)

var rootCmd = &cobra.Command{
	Use:   "contactform",
	Short: "Contact form client",
	Long: `contactform drives the contact submission pipeline from the terminal.
It fills the form, attaches a Turnstile token, and posts the message to the
relay endpoint.`,
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a contact form message",
	Long: `Submit a contact form message to the relay endpoint.

The Turnstile token must be obtained out of band (for example from a test
token configured on the server), since no browser widget runs here.

Example:
  contactform send --name "Ada" --email ada@example.com --message "Hello" --token <turnstile-token>`,
	Run: func(cmd *cobra.Command, args []string) {
		env := form.NewStaticEnvironment(flagToken)
		controller := form.NewController(env, flagEndpoint, "")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		controller.Mount(ctx)
		controller.SetName(flagName)
		controller.SetEmail(flagEmail)
		controller.SetSubject(flagSubject)
		controller.SetMessage(flagMessage)

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Sending..."
		s.Start()

		err := controller.Submit(ctx)
		s.Stop()

		if err != nil {
			if msg := controller.StatusMessage(); msg != "" {
				fmt.Println(msg)
			} else {
				fmt.Printf("Error: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Println("Message sent. Thank you for reaching out!")
	},
}

func init() {
	sendCmd.Flags().StringVar(&flagEndpoint, "endpoint", "http://localhost:8080/api/contact", "Relay endpoint URL")
	sendCmd.Flags().StringVar(&flagToken, "token", "", "Turnstile verification token")
	sendCmd.Flags().StringVar(&flagName, "name", "", "Your name")
	sendCmd.Flags().StringVar(&flagEmail, "email", "", "Your email address")
	sendCmd.Flags().StringVar(&flagSubject, "subject", "", "Message subject")
	sendCmd.Flags().StringVar(&flagMessage, "message", "", "Message body")

	rootCmd.AddCommand(sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
