package meritz

import (
	"testing"
	"time"

	"fill-ledger-bot/internal/types"
)

var seoul = time.FixedZone("KST", 9*60*60)

func testNow() time.Time {
	return time.Date(2026, 8, 23, 12, 0, 0, 0, seoul)
}

const buyNotification = `[메리츠증권] 해외주식 주문체결 안내

종목명 : 티큐큐큐(TQQQ)
매매구분 : 매수
체결단가 : 45.12
체결수량 : 3
체결일자 : 06/13`

func TestParseFillBuyNotification(t *testing.T) {
	ev, ok, err := ParseFill(buyNotification, testNow())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !ok {
		t.Fatal("Expected the notification to parse as a fill")
	}

	if ev.Source != types.SourceMeritz {
		t.Errorf("Expected meritz source, got %s", ev.Source)
	}
	if ev.Symbol != "TQQQ" {
		t.Errorf("Expected symbol TQQQ, got %s", ev.Symbol)
	}
	if ev.Side != types.SideBuy {
		t.Errorf("Expected buy side, got %s", ev.Side)
	}
	if ev.Price != 45.12 {
		t.Errorf("Expected price 45.12, got %f", ev.Price)
	}
	if ev.Qty != 3 {
		t.Errorf("Expected qty 3, got %f", ev.Qty)
	}
	if ev.Time.Year() != 2026 || ev.Time.Month() != time.June || ev.Time.Day() != 13 {
		t.Errorf("Expected fill date 2026-06-13, got %v", ev.Time)
	}
}

func TestParseFillIgnoresOtherMessages(t *testing.T) {
	_, ok, err := ParseFill("업비트 기록 수행", testNow())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok {
		t.Error("Expected a plain chat message to be ignored")
	}
}

func TestParseFillMissingFieldIgnored(t *testing.T) {
	text := `[메리츠증권] 해외주식 주문체결 안내
종목명 : 티큐큐큐(TQQQ)
매매구분 : 매수
체결단가 : 45.12`
	_, ok, err := ParseFill(text, testNow())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok {
		t.Error("Expected a notification without all fields to be ignored")
	}
}

func TestParseFillSellSide(t *testing.T) {
	text := `[메리츠증권] 해외주식 주문체결 안내
종목명 : 티큐큐큐(TQQQ)
매매구분 : 매도
체결단가 : 50
체결수량 : 2
체결일자 : 08/23`
	ev, ok, err := ParseFill(text, testNow())
	if err != nil || !ok {
		t.Fatalf("Expected a parsed fill, got ok=%v err=%v", ok, err)
	}
	if ev.Side != types.SideSell {
		t.Errorf("Expected sell side, got %s", ev.Side)
	}
}

func TestParseFillGroupedPrice(t *testing.T) {
	text := `[메리츠증권] 해외주식 주문체결 안내
종목명 : 비트코인(BTC)
매매구분 : 매수
체결단가 : 1,234.56
체결수량 : -3
체결일자 : 8 / 5`
	ev, ok, err := ParseFill(text, testNow())
	if err != nil || !ok {
		t.Fatalf("Expected a parsed fill, got ok=%v err=%v", ok, err)
	}
	if ev.Price != 1234.56 {
		t.Errorf("Expected grouped price to parse, got %f", ev.Price)
	}
	if ev.Qty != -3 {
		t.Errorf("Expected the signed quantity to pass through, got %f", ev.Qty)
	}
	if ev.Time.Month() != time.August || ev.Time.Day() != 5 {
		t.Errorf("Expected fill date 08-05, got %v", ev.Time)
	}
}

func TestParseFillBadSymbol(t *testing.T) {
	text := `[메리츠증권] 해외주식 주문체결 안내
종목명 : 티큐큐큐
매매구분 : 매수
체결단가 : 45.12
체결수량 : 3
체결일자 : 06/13`
	_, _, err := ParseFill(text, testNow())
	if err == nil {
		t.Error("Expected an error when the ticker is missing")
	}
}

func TestParseFillBadDate(t *testing.T) {
	text := `[메리츠증권] 해외주식 주문체결 안내
종목명 : 티큐큐큐(TQQQ)
매매구분 : 매수
체결단가 : 45.12
체결수량 : 3
체결일자 : 내일`
	_, _, err := ParseFill(text, testNow())
	if err == nil {
		t.Error("Expected an error for an unparseable date")
	}
}

func TestParseFillImpossibleDay(t *testing.T) {
	text := `[메리츠증권] 해외주식 주문체결 안내
종목명 : 티큐큐큐(TQQQ)
매매구분 : 매수
체결단가 : 45.12
체결수량 : 3
체결일자 : 02/31`
	_, _, err := ParseFill(text, testNow())
	if err == nil {
		t.Error("Expected an error for a day that does not exist")
	}
}
