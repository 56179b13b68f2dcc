// C:\Users\wasab\OneDrive\デスクトップ\REGI\advisor\advisor.go
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"regi/config"
	"regi/model"
)

// ErrBusy は前回のアドバイス取得がまだ完了していないときに返されます。
var ErrBusy = errors.New("advice request already in flight")

const (
	maxProducts = 30
	maxSales    = 10

	// fallbackAdvice はAIサービスに到達できないときの定型メッセージです。
	fallbackAdvice = "本日も営業お疲れさまです。在庫の回転と売れ筋の把握を続けていきましょう。AIアドバイスは現在利用できませんが、データは正しく記録されています。"
)

// Client はAIアドバイス取得の窓口です。同時に1リクエストだけを許可し、
// 連続失敗時はサーキットブレーカーでしばらく呼び出しを止めます。
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
	cfgFn      func() config.Config

	mu       sync.Mutex
	inFlight bool
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:        "advisor",
			MaxRequests: 1,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		cfgFn: config.GetConfig,
	}
}

// Advise は在庫と売上の要約からアドバイス文を生成します。
// サービス障害・レートリミット・ブレーカー開放時は定型メッセージに
// 切り替えて fallback=true を返し、エラーにはしません。
// 同時実行だけは ErrBusy として呼び出し側へ返します。
func (c *Client) Advise(ctx context.Context, products []model.Product, sales []model.Sale) (advice string, fallback bool, err error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return "", false, ErrBusy
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	cfg := c.cfgFn()
	if cfg.AdvisorAPIKey == "" {
		log.Printf("WARN: advisor API key not configured, returning fallback advice")
		return fallbackAdvice, true, nil
	}

	prompt := buildPrompt(products, sales)

	result, err := c.breaker.Execute(func() (string, error) {
		return c.requestAdvice(ctx, cfg, prompt)
	})
	if err != nil {
		log.Printf("WARN: advice request failed, returning fallback: %v", err)
		return fallbackAdvice, true, nil
	}
	return result, false, nil
}

func (c *Client) requestAdvice(ctx context.Context, cfg config.Config, prompt string) (string, error) {
	payload := chatRequest{
		Model: cfg.AdvisorModel,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode advice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.AdvisorEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build advice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.AdvisorAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("advice request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", errors.New("advice service rate limited")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advice service returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read advice response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode advice response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("advice response contained no choices")
	}

	advice := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if advice == "" {
		return "", errors.New("advice response was empty")
	}
	return advice, nil
}

// buildPrompt は商品と売上を上限件数まで要約してプロンプトを組み立てます。
func buildPrompt(products []model.Product, sales []model.Sale) string {
	if len(products) > maxProducts {
		products = products[:maxProducts]
	}
	if len(sales) > maxSales {
		sales = sales[:maxSales]
	}

	var b strings.Builder
	b.WriteString("あなたは小規模小売店の経営アドバイザーです。以下の在庫と直近の売上をもとに、仕入れ・陳列・販売促進の具体的なアドバイスを日本語で3点以内、簡潔に述べてください。\n\n")

	b.WriteString("【在庫】\n")
	if len(products) == 0 {
		b.WriteString("(商品未登録)\n")
	}
	for _, p := range products {
		fmt.Fprintf(&b, "- %s: 在庫%d 価格%.0f円\n", p.Name, p.Stock, p.Price)
	}

	b.WriteString("\n【直近の売上】\n")
	if len(sales) == 0 {
		b.WriteString("(売上なし)\n")
	}
	for _, s := range sales {
		fmt.Fprintf(&b, "- %s: %.0f円 (%d点, %s)\n", s.Timestamp.Local().Format("01/02 15:04"), s.Total, s.UnitCount(), s.PaymentMethod.Label())
	}
	return b.String()
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
