package engine

import (
	"fmt"
	"strconv"

	"fill-ledger-bot/internal/money"
	"fill-ledger-bot/internal/types"
)

// Chat replies are product strings and stay in Korean.
const (
	replyUpbitDisabled    = "업비트 기능이 비활성화되어 있습니다. (upbit.enabled=false)"
	replyUpbitKeysMissing = "업비트 API 키가 설정되지 않았습니다."
)

// buildFillReply renders the confirmation sent after a fill lands: the sheet
// it went into plus the summary block driving today's orders.
func buildFillReply(res *types.WriteResult) string {
	c := res.Currency
	return fmt.Sprintf(
		"구글스프레드시트(%s) 기입 완료\n"+
			"현재 평단가 : %s\n"+
			"현재 주가 : %s\n"+
			"\n"+
			"오늘 매수 시도액\n"+
			"LOC 평단 : %s\n"+
			"LOC 큰수 : %s\n"+
			"\n"+
			"오늘 매도 시도액\n"+
			"매도 지정가 : %s\n"+
			"매도 수량 : %s",
		res.SpreadsheetTitle,
		money.Format(res.AvgPrice, c),
		money.Format(res.CurrentPrice, c),
		money.Format(res.BuyLocAvg, c),
		money.Format(res.BuyLocHigh, c),
		money.Format(res.SellAll, c),
		strconv.FormatFloat(res.SellQtyCurrentRound, 'f', -1, 64),
	)
}

// buildSyncReply renders the sync command's result. When fills were written
// the last fill's summary is attached so the chat shows the sheet state.
func buildSyncReply(rep types.SyncReport) string {
	msg := fmt.Sprintf("업비트 기록 수행 완료\n- 처리 체결 수: %d\n- 시트 기입 수: %d",
		rep.Processed, rep.Written)
	if rep.Written > 0 && rep.Last != nil {
		msg += "\n\n" + buildFillReply(rep.Last)
	}
	return msg
}
