package source

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/netarmor/securenet"
)

// DefaultHTTPTimeout は参照画像のダウンロードに使う既定のタイムアウトです。
const DefaultHTTPTimeout = 30 * time.Second

const maxRedirects = 10

// sharedAddressSpace はキャリアグレード NAT 用の 100.64.0.0/10 です。
// securenet の制限対象に含まれないため、ここで追加で拒否します。
var sharedAddressSpace = &net.IPNet{IP: net.IPv4(100, 64, 0, 0).To4(), Mask: net.CIDRMask(10, 32)}

// NewHTTPClient は参照画像の取得に使う httpkit クライアントを作成します。
// 接続直前の IP 検証（DNS Rebinding 対策）に加え、リダイレクト先も毎回検証します。
func NewHTTPClient(timeout time.Duration, opts ...httpkit.ClientOption) *httpkit.Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	base := securenet.NewSafeHTTPClient(timeout)
	if transport, ok := base.Transport.(*http.Transport); ok {
		dial := transport.DialContext
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				host = addr
			}
			if err := checkHost(ctx, host); err != nil {
				return nil, err
			}
			return dial(ctx, network, addr)
		}
	}
	base.CheckRedirect = redirectPolicy(IsSafeURL)

	options := append([]httpkit.ClientOption{httpkit.WithHTTPClient(base)}, opts...)
	return httpkit.New(timeout, options...)
}

// IsSafeURL は SSRF 対策として URL を検証します。
// 名前解決されたすべての IP に対して、プライベート・ループバック・リンクローカル・
// 未指定アドレス・共有アドレス空間のいずれでもないことを確認します。
func IsSafeURL(rawURL string) (bool, error) {
	safe, err := securenet.IsSafeURL(rawURL)
	if !safe || err != nil {
		return false, err
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", u.Scheme)
	}
	if err := checkHost(context.Background(), u.Hostname()); err != nil {
		return false, err
	}
	return true, nil
}

// redirectPolicy はリダイレクトのたびに遷移先 URL を検証する CheckRedirect を返します。
func redirectPolicy(validate func(rawURL string) (bool, error)) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("リダイレクトが多すぎます (%d回)", len(via))
		}
		if safe, err := validate(req.URL.String()); !safe || err != nil {
			return fmt.Errorf("%w: リダイレクト先 %s: %v", ErrUnsafeURL, req.URL.Redacted(), err)
		}
		return nil
	}
}

func checkHost(ctx context.Context, host string) error {
	ips, err := resolve(ctx, host)
	if err != nil {
		return fmt.Errorf("名前解決失敗: %w", err)
	}
	for _, ip := range ips {
		if ip.IsUnspecified() || sharedAddressSpace.Contains(ip) {
			return fmt.Errorf("%w: 制限されたネットワークへのアクセスを検知: %s", ErrUnsafeURL, ip.String())
		}
	}
	return nil
}

func resolve(ctx context.Context, host string) ([]net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	ips := make([]net.IP, 0, len(addrs))
	for _, a := range addrs {
		ips = append(ips, a.IP)
	}
	return ips, nil
}
