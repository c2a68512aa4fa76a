package browser

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/config"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// BIGKinds login flow selectors.
const (
	homeURL          = "https://www.bigkinds.or.kr/"
	selMembership    = ".topMembership"
	selLoginModalBtn = `a[data-target="#login-modal"]`
	selLoginID       = "#login-user-id"
	selLoginPW       = "#login-user-password"
	selLoginBtn      = "#login-btn"
	selLoginModal    = ".modal.modal-login.modal-click-close.in"
)

// Login step settle delays. The login page animates its modal with no
// observable completion event.
const (
	homeSettle   = 2 * time.Second
	clickSettle  = 1 * time.Second
	submitSettle = 3 * time.Second
)

// Session owns one headless Chrome instance and its single page for the
// duration of a crawl run. Credentials come from BIGKINDS_ID/BIGKINDS_PW.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	cfg     config.BrowserConfig
	userID  string
	userPW  string
	logger  *slog.Logger
}

// NewSession launches the browser and opens a blank page. It fails fast
// when credentials are missing: a session that cannot log in is useless.
func NewSession(cfg config.BrowserConfig, logger *slog.Logger) (*Session, error) {
	userID := os.Getenv("BIGKINDS_ID")
	userPW := os.Getenv("BIGKINDS_PW")
	if userID == "" || userPW == "" {
		return nil, types.ErrMissingCredentials
	}

	s := &Session{
		cfg:    cfg,
		userID: userID,
		userPW: userPW,
		logger: logger.With("component", "browser_session"),
	}

	launchURL, err := s.launchBrowser()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(launchURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	s.browser = b

	page, err := s.newPage()
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}
	s.page = page

	s.logger.Info("browser session ready",
		"headless", cfg.Headless,
		"stealth", cfg.Stealth,
		"window", fmt.Sprintf("%dx%d", cfg.WindowWidth, cfg.WindowHeight),
	)
	return s, nil
}

// launchBrowser starts a Chromium instance with appropriate flags.
func (s *Session) launchBrowser() (string, error) {
	l := launcher.New().
		Headless(s.cfg.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Set("window-size", fmt.Sprintf("%d,%d", s.cfg.WindowWidth, s.cfg.WindowHeight))

	if s.cfg.UserDataDir != "" {
		l = l.UserDataDir(s.cfg.UserDataDir)
	}

	return l.Launch()
}

// newPage opens the session page, stealth-patched when configured.
func (s *Session) newPage() (*rod.Page, error) {
	var page *rod.Page
	var err error
	if s.cfg.Stealth {
		page, err = stealth.Page(s.browser)
	} else {
		page, err = s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		return nil, err
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             s.cfg.WindowWidth,
		Height:            s.cfg.WindowHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		s.logger.Warn("failed to set viewport", "error", err)
	}
	return page, nil
}

// Login performs the BIGKinds login sequence: open the membership menu,
// open the login modal, submit credentials, then verify the modal is gone.
func (s *Session) Login() error {
	s.logger.Info("logging in")

	if err := s.page.Timeout(s.cfg.NavTimeout).Navigate(homeURL); err != nil {
		return &types.NavigationError{URL: homeURL, Step: "navigate", Err: err}
	}
	time.Sleep(homeSettle)

	if err := s.click(selMembership); err != nil {
		return &types.NavigationError{URL: homeURL, Step: "open_membership", Err: err}
	}
	time.Sleep(clickSettle)

	if err := s.click(selLoginModalBtn); err != nil {
		return &types.NavigationError{URL: homeURL, Step: "open_login_modal", Err: err}
	}
	time.Sleep(clickSettle)

	if err := s.typeInto(selLoginID, s.userID); err != nil {
		return &types.NavigationError{URL: homeURL, Step: "type_user_id", Err: err}
	}
	if err := s.typeInto(selLoginPW, s.userPW); err != nil {
		return &types.NavigationError{URL: homeURL, Step: "type_password", Err: err}
	}
	if err := s.click(selLoginBtn); err != nil {
		return &types.NavigationError{URL: homeURL, Step: "submit_login", Err: err}
	}
	time.Sleep(submitSettle)

	// The only success signal is the login modal closing.
	has, _, err := s.page.Has(selLoginModal)
	if err != nil {
		s.logger.Warn("failed to check login modal state", "error", err)
	}
	if has {
		return types.ErrLoginFailed
	}

	s.logger.Info("login completed")
	return nil
}

func (s *Session) click(selector string) error {
	el, err := s.page.Timeout(s.cfg.NavTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (s *Session) typeInto(selector, text string) error {
	el, err := s.page.Timeout(s.cfg.NavTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input(text)
}

// CrawlPage wraps the session's page as a crawler.Page.
func (s *Session) CrawlPage() *RodPage {
	return &RodPage{
		page:       s.page,
		navTimeout: s.cfg.NavTimeout,
		logger:     s.logger,
	}
}

// Close shuts the browser down. Safe to defer immediately after NewSession.
func (s *Session) Close() error {
	s.logger.Info("closing browser session")
	if s.browser != nil {
		return s.browser.Close()
	}
	return nil
}
