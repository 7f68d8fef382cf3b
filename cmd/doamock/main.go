// Command doamock serves a Baserow-shaped prayer table for local runs.
//
//	doamock --addr :8081 --token dev --page-size 5 --fail-rate 0.2
//	DOAHARIAN_BASE_URL=http://localhost:8081 DOAHARIAN_TOKEN=dev doaharian
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/pflag"

	"doaharian/internal/model"
	"doaharian/internal/util/logx"
)

var samples = []model.Record{
	{ID: 1, Name: "Doa Sebelum Tidur", Text: "بِاسْمِكَ اللّٰهُمَّ أَحْيَا وَبِاسْمِكَ أَمُوْتُ"},
	{ID: 2, Name: "Doa Bangun Tidur", Text: "اَلْحَمْدُ لِلّٰهِ الَّذِيْ أَحْيَانَا بَعْدَ مَا أَمَاتَنَا وَإِلَيْهِ النُّشُوْرُ"},
	{ID: 3, Name: "Doa Sebelum Makan", Text: "اَللّٰهُمَّ بَارِكْ لَنَا فِيْمَا رَزَقْتَنَا وَقِنَا عَذَابَ النَّارِ"},
	{ID: 4, Name: "Doa Sesudah Makan", Text: "اَلْحَمْدُ لِلّٰهِ الَّذِيْ أَطْعَمَنَا وَسَقَانَا وَجَعَلَنَا مُسْلِمِيْنَ"},
	{ID: 5, Name: "Doa Masuk Kamar Mandi", Text: "اَللّٰهُمَّ إِنِّيْ أَعُوْذُ بِكَ مِنَ الْخُبُثِ وَالْخَبَائِثِ"},
	{ID: 6, Name: "Doa Keluar Kamar Mandi", Text: "غُفْرَانَكَ"},
	{ID: 7, Name: "Doa Keluar Rumah", Text: "بِسْمِ اللّٰهِ تَوَكَّلْتُ عَلَى اللّٰهِ لَا حَوْلَ وَلَا قُوَّةَ إِلَّا بِاللّٰهِ"},
	{ID: 8, Name: "Doa Masuk Masjid", Text: "اَللّٰهُمَّ افْتَحْ لِيْ أَبْوَابَ رَحْمَتِكَ"},
	{ID: 9, Name: "Doa Keluar Masjid", Text: "اَللّٰهُمَّ إِنِّيْ أَسْأَلُكَ مِنْ فَضْلِكَ"},
	{ID: 10, Name: "Doa Naik Kendaraan", Text: "سُبْحَانَ الَّذِيْ سَخَّرَ لَنَا هٰذَا وَمَا كُنَّا لَهُ مُقْرِنِيْنَ"},
	{ID: 11, Name: "Doa Untuk Kedua Orang Tua", Text: "رَبِّ اغْفِرْ لِيْ وَلِوَالِدَيَّ وَارْحَمْهُمَا كَمَا رَبَّيَانِيْ صَغِيْرًا"},
	{ID: 12, Name: "Doa Kebaikan Dunia Akhirat", Text: "رَبَّنَا آتِنَا فِي الدُّنْيَا حَسَنَةً وَفِي الْآخِرَةِ حَسَنَةً وَقِنَا عَذَابَ النَّارِ"},
}

type page struct {
	Count   int            `json:"count"`
	Next    *string        `json:"next"`
	Results []model.Record `json:"results"`
}

func main() {
	var (
		addr     string
		token    string
		table    string
		pageSize int
		failRate float64
		latency  time.Duration
	)
	pflag.StringVar(&addr, "addr", ":8081", "Listen address")
	pflag.StringVar(&token, "token", "dev", "Token expected in the Authorization header (empty accepts any)")
	pflag.StringVar(&table, "table", "581962", "Table id served under /api/database/rows/table/{table}/")
	pflag.IntVar(&pageSize, "page-size", 0, "Rows per page; 0 serves everything in one page")
	pflag.Float64Var(&failRate, "fail-rate", 0, "Fraction of requests answered with 500 (0..1)")
	pflag.DurationVar(&latency, "latency", 0, "Artificial delay per request")
	pflag.Parse()

	if failRate < 0 || failRate > 1 {
		fmt.Fprintln(os.Stderr, "fail-rate must be within 0..1")
		os.Exit(2)
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/database/rows/table/{table}/", func(w http.ResponseWriter, req *http.Request) {
		if latency > 0 {
			time.Sleep(latency)
		}
		if mux.Vars(req)["table"] != table {
			http.Error(w, `{"error":"ERROR_TABLE_DOES_NOT_EXIST"}`, http.StatusNotFound)
			return
		}
		if token != "" && req.Header.Get("Authorization") != "Token "+token {
			http.Error(w, `{"error":"ERROR_INVALID_TOKEN"}`, http.StatusUnauthorized)
			return
		}
		if failRate > 0 && rand.Float64() < failRate {
			logx.Warnf("doamock: injected failure for %s", req.URL)
			http.Error(w, `{"error":"injected"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pageFor(req, pageSize))
	}).Methods(http.MethodGet)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, scancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer scancel()
		_ = srv.Shutdown(sctx)
	}()
	fmt.Fprintf(os.Stderr, "doamock listening on %s (table %s, %d prayers)\n", addr, table, len(samples))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintln(os.Stderr, "doamock:", err)
		os.Exit(1)
	}
}

func pageFor(req *http.Request, size int) page {
	if size <= 0 {
		return page{Count: len(samples), Results: samples}
	}
	n, _ := strconv.Atoi(req.URL.Query().Get("page"))
	if n < 1 {
		n = 1
	}
	start := (n - 1) * size
	if start > len(samples) {
		start = len(samples)
	}
	end := start + size
	if end > len(samples) {
		end = len(samples)
	}
	p := page{Count: len(samples), Results: samples[start:end]}
	if end < len(samples) {
		u := *req.URL
		u.Scheme = "http"
		u.Host = req.Host
		q := u.Query()
		q.Set("page", strconv.Itoa(n+1))
		u.RawQuery = q.Encode()
		next := u.String()
		p.Next = &next
	}
	return p
}
