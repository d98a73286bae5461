package telegram

// Hour-of-day greetings sent to the notify chat on startup, shutdown and
// the daily check-in.

func startupGreeting(hour int) string {
	switch {
	case hour >= 5 && hour < 10:
		return "おはよう！プロデューサーくん！今日も一緒にがんばろうね✨"
	case hour >= 10 && hour < 12:
		return "やっと起きたの…？もう、午前中だよ！プロデューサーくん！"
	case hour >= 12 && hour < 14:
		return "おはようプロデューサーくん！お昼ご飯はもう食べた？"
	case hour >= 14 && hour < 17:
		return "こんにちはプロデューサーくん！午後も一緒にがんばろうね"
	case hour >= 17 && hour < 21:
		return "こんばんは！プロデューサーくん、今日もお疲れ様！"
	case hour >= 21:
		return "こんな時間から？…まぁ、会えて嬉しいけどね。プロデューサーくん！"
	default: // 0-4時
		return "こんな深夜に…？無理しちゃダメだよ、プロデューサーくん。"
	}
}

func shutdownGreeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "じゃあね！今日も一日がんばってね、プロデューサーくん！"
	case hour >= 12 && hour < 17:
		return "いってらっしゃい！また後で会おうね、プロデューサーくん！"
	case hour >= 17 && hour < 21:
		return "お疲れ様！ゆっくり休んでね、プロデューサーくん！"
	case hour >= 21:
		return "おやすみ…プロデューサーくんもゆっくり休んでね🌙"
	default: // 0-4時
		return "こんな時間まで…お疲れ様。ちゃんと寝るんだよ！プロデューサーくん。"
	}
}
