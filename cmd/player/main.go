// cmd/player/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"daily-broadcast/internal/client"
	"daily-broadcast/internal/clock"
	"daily-broadcast/internal/domain"
	"daily-broadcast/internal/player"
	"daily-broadcast/internal/util"
)

type options struct {
	apiURL       string
	wallet       string
	userID       string
	viewers      int64
	pollInterval time.Duration
	playDuration time.Duration
	playerCmd    string
	timezone     string
	once         bool
	logLevel     string
}

// loadOptions reads PLAYER_* environment variables as defaults for the flags.
func loadOptions(args []string) (options, error) {
	v := viper.New()
	v.SetEnvPrefix("player")
	v.AutomaticEnv()
	v.SetDefault("api_url", "http://127.0.0.1:8080")
	v.SetDefault("wallet", "")
	v.SetDefault("viewers", 1000)
	v.SetDefault("poll_interval", "30s")
	v.SetDefault("play_duration", "30s")
	v.SetDefault("cmd", "")
	v.SetDefault("timezone", "")
	v.SetDefault("log_level", "warn")

	var opts options
	fs := flag.NewFlagSet("player", flag.ContinueOnError)
	fs.StringVar(&opts.apiURL, "api", v.GetString("api_url"), "broadcast API base URL")
	fs.StringVar(&opts.wallet, "wallet", v.GetString("wallet"), "wallet address credited for watching")
	fs.StringVar(&opts.userID, "user", "", "session identifier sent on wallet connect (random when empty)")
	fs.Int64Var(&opts.viewers, "viewers", v.GetInt64("viewers"), "estimated viewer count for the revenue split")
	fs.DurationVar(&opts.pollInterval, "poll", v.GetDuration("poll_interval"), "how often today's broadcast is refetched")
	fs.DurationVar(&opts.playDuration, "duration", v.GetDuration("play_duration"), "simulated playback length when no player command is set")
	fs.StringVar(&opts.playerCmd, "cmd", v.GetString("cmd"), "external player command; the video URL is appended")
	fs.StringVar(&opts.timezone, "tz", v.GetString("timezone"), "time zone of the broadcast schedule (local when empty)")
	fs.BoolVar(&opts.once, "once", false, "exit after the first broadcast has been watched")
	fs.StringVar(&opts.logLevel, "log-level", v.GetString("log_level"), "log level")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.pollInterval <= 0 {
		return opts, fmt.Errorf("invalid poll interval %s", opts.pollInterval)
	}
	if opts.viewers < 0 {
		return opts, fmt.Errorf("invalid viewer count %d", opts.viewers)
	}
	if opts.userID == "" {
		opts.userID = uuid.NewString()
	}
	return opts, nil
}

func main() {
	opts, err := loadOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	util.InitLogger(opts.logLevel)
	logger := util.GetLogger()

	loc := time.Local
	if opts.timezone != "" {
		if loc, err = time.LoadLocation(opts.timezone); err != nil {
			fmt.Fprintln(os.Stderr, "error: invalid time zone:", err)
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clk := clock.Real{Location: loc}
	s := &session{
		opts:    opts,
		client:  client.New(opts.apiURL, nil),
		clock:   clk,
		machine: player.NewMachine(clk, logger),
		logger:  logger,
	}
	if err := s.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// session drives the player state machine from API polls.
type session struct {
	opts    options
	client  *client.Client
	clock   clock.Clock
	machine *player.Machine
	logger  *slog.Logger

	fetched         bool
	countdownFor    int64
	cancelCountdown context.CancelFunc
}

func (s *session) run(ctx context.Context) error {
	poll := time.NewTicker(s.opts.pollInterval)
	defer poll.Stop()
	defer s.stopCountdown()

	completed := make(chan int64, 1)
	finished := make(chan *domain.Broadcast, 1)

	s.refresh(ctx, completed)
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return ctx.Err()

		case <-poll.C:
			s.refresh(ctx, completed)

		case id := <-completed:
			b := s.machine.Broadcast()
			if b == nil || b.ID != id {
				continue
			}
			s.countdownFor = 0
			if s.machine.CountdownComplete() != player.StatePlaying {
				continue
			}
			go func() {
				if err := s.play(ctx, b); err != nil {
					s.logger.Error("Playback failed", "id", b.ID, "error", err)
				}
				select {
				case finished <- b:
				case <-ctx.Done():
				}
			}()

		case b := <-finished:
			if s.machine.PlaybackEnded() != player.StateEnded {
				continue
			}
			fmt.Println("Broadcast ended.")
			if err := s.settle(ctx, b); err != nil {
				s.logger.Error("Failed to settle viewer reward", "id", b.ID, "error", err)
				fmt.Println("Could not settle reward:", err)
			}
			if s.opts.once {
				return nil
			}
		}
	}
}

// refresh refetches today's broadcast and feeds it into the machine.
func (s *session) refresh(ctx context.Context, completed chan<- int64) {
	b, err := s.client.TodayBroadcast(ctx)
	if err != nil {
		s.logger.Warn("Failed to fetch today's broadcast", "error", err)
		return
	}

	prev := s.machine.State()
	prevID := int64(0)
	if tracked := s.machine.Broadcast(); tracked != nil {
		prevID = tracked.ID
	}
	state := s.machine.Observe(b)
	defer func() { s.fetched = true }()

	switch state {
	case player.StateNone:
		s.stopCountdown()
		if prev != player.StateNone || !s.fetched {
			fmt.Println("No broadcast scheduled for today.")
		}
	case player.StateWaiting:
		if b.ID != s.countdownFor {
			s.stopCountdown()
			fmt.Printf("Today's broadcast: %q at %s\n", b.VideoTitle, b.BroadcastTime)
			s.startCountdown(ctx, b.ID, s.machine.Target(), completed)
		}
	case player.StateEnded:
		if b.ID != prevID {
			s.stopCountdown()
			next, err := player.NextOccurrence(s.clock.Now(), b.BroadcastTime)
			if err == nil {
				fmt.Printf("Today's broadcast %q at %s has already aired. Next slot: %s\n",
					b.VideoTitle, b.BroadcastTime, next.Format("2006-01-02 15:04"))
			}
		}
	}
}

func (s *session) startCountdown(ctx context.Context, id int64, target time.Time, completed chan<- int64) {
	cdCtx, cancel := context.WithCancel(ctx)
	s.cancelCountdown = cancel
	s.countdownFor = id

	go func() {
		err := player.NewCountdown(s.clock, target).Run(cdCtx, func(r player.Remaining) {
			fmt.Printf("\rStarts in %s ", r)
		})
		if err != nil {
			return
		}
		fmt.Println()
		select {
		case completed <- id:
		case <-cdCtx.Done():
		}
	}()
}

func (s *session) stopCountdown() {
	if s.cancelCountdown != nil {
		s.cancelCountdown()
		s.cancelCountdown = nil
	}
	s.countdownFor = 0
}

// play runs the external player when configured, otherwise waits out the
// simulated playback duration.
func (s *session) play(ctx context.Context, b *domain.Broadcast) error {
	fmt.Printf("Now playing %q: %s\n", b.VideoTitle, b.VideoURL)
	if s.opts.playerCmd != "" {
		fields := strings.Fields(s.opts.playerCmd)
		cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], b.VideoURL)...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("player command %q: %w", s.opts.playerCmd, err)
		}
		return nil
	}

	timer := time.NewTimer(s.opts.playDuration)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// settle prints the revenue split and, with a wallet configured, records and
// claims this viewer's share.
func (s *session) settle(ctx context.Context, b *domain.Broadcast) error {
	split, err := s.client.TodayRevenue(ctx, s.opts.viewers)
	if err != nil {
		return fmt.Errorf("revenue split: %w", err)
	}
	if split == nil {
		return nil
	}
	fmt.Printf("Ad payment %s split over %d viewers:\n", split.AdPayment, split.EstimatedViewers)
	fmt.Printf("  user rewards    %s (75%%)\n", split.UserRewards)
	fmt.Printf("  platform fee    %s (15%%)\n", split.PlatformFee)
	fmt.Printf("  operating costs %s (10%%)\n", split.OperatingCosts)
	fmt.Printf("  per viewer      %s\n", split.PerViewer.StringFixed(6))

	if s.opts.wallet == "" {
		return nil
	}
	if _, err := s.client.ConnectWallet(ctx, s.opts.wallet, s.opts.userID); err != nil {
		return fmt.Errorf("connect wallet: %w", err)
	}
	if _, err := s.client.RecordView(ctx, client.RecordViewRequest{
		BroadcastID:   b.ID,
		WalletAddress: s.opts.wallet,
		RewardAmount:  split.PerViewer,
	}); err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	if _, err := s.client.ClaimView(ctx, b.ID, s.opts.wallet); err != nil {
		return fmt.Errorf("claim view: %w", err)
	}
	wallet, err := s.client.Wallet(ctx, s.opts.wallet)
	if err != nil {
		return fmt.Errorf("wallet: %w", err)
	}
	fmt.Printf("Claimed %s for %s (total earned %s)\n", split.PerViewer.StringFixed(6), wallet.WalletAddress, wallet.TotalEarned)
	return nil
}
