package main

var (
	PrivacyNotice = []string{
		`This site counts page visits so I can tell which pages people read. The counter stores
	a salted hash of your IP address, your browser's user agent, and the page you opened. Raw IP
	addresses are never written to disk.`,

		`If your browser sends a Do Not Track header, nothing is recorded. Downloads of my CV are
	counted the same way.`,

		`Visit records are deleted after twelve months. There are no cookies for visitors, no
	third-party trackers, and no advertising.`,
	}
)
