package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sse "github.com/r3labs/sse/v2"
	"github.com/spf13/cobra"
	"github.com/wheelibin/glasshouse/internal/events"
)

func (a *App) watchCmd() *cobra.Command {
	var (
		url      string
		username string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow live changes from a running glasshoused",
		Long: `Log in to a running daemon and print every change event it sends.
The password is read from GLASSHOUSE_PASSWORD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url = strings.TrimRight(url, "/")

			jar, err := cookiejar.New(nil)
			if err != nil {
				return err
			}
			client := &http.Client{Jar: jar}
			if err := login(client, url, username, os.Getenv("GLASSHOUSE_PASSWORD")); err != nil {
				return err
			}

			eventChannel := make(chan *sse.Event)
			consumer := events.NewConsumer(a.logger)
			if err := consumer.Subscribe(url+"/api/events", client, eventChannel); err != nil {
				return fmt.Errorf("Error subscribing to events: %w", err)
			}
			defer consumer.Unsubscribe()

			quitChannel := make(chan os.Signal, 1)
			signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

			out := cmd.OutOrStdout()
			colorMuted.Fprintf(out, "Watching %s, ctrl-c to stop\n", url)
			for {
				select {
				case msg := <-eventChannel:
					event, err := events.Decode(msg)
					if err != nil {
						a.logger.Warn("Unable to decode event", "err", err)
						continue
					}
					colorOK.Fprintf(out, "%s ", event.Time.Local().Format(time.TimeOnly))
					fmt.Fprintf(out, "%s", event.Type)
					if event.DeviceID != "" {
						fmt.Fprintf(out, " %s", event.DeviceID)
					}
					if event.RecordID != "" {
						fmt.Fprintf(out, " #%s", event.RecordID)
					}
					fmt.Fprintln(out)
				case <-quitChannel:
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://localhost:4000", "Daemon address")
	cmd.Flags().StringVar(&username, "username", "", "Operator username (required)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func login(client *http.Client, url string, username string, password string) error {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}
	resp, err := client.Post(url+"/api/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("Error logging in to (%s): %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login to (%s) failed: %s", url, resp.Status)
	}
	return nil
}
