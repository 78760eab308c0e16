package controller_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/databases/testdb"
	"sekolahku_backend/internals/features/finance/pembayaran/route"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/views"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
	Details map[string]any      `json:"details"`
}

func newApp(t *testing.T, db *gorm.DB, petugasID string) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{Views: views.Engine(), ErrorHandler: helper.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, petugasID)
		return c.Next()
	})
	route.PembayaranRoutes(app, db)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, env, string(raw)
}

func TestTagihanBayarKwitansi(t *testing.T) {
	db := testdb.Open(t)
	petugas := testdb.User(t, db, "kasir", "staff")
	k := testdb.Kelas(t, db, "7A", "2024")
	testdb.Siswa(t, db, k.KelasID, "1001", "Budi")
	spp := testdb.Pos(t, db, "SPP", posModel.PosTipeBulanan)
	app := newApp(t, db, petugas.UserID.String())

	body := `{"nis":"1001","pos_id":"` + spp.PosID.String() + `","tahun_ajaran":"2024/2025","bulan":7,"nominal":150000}`
	code, env, raw := do(t, app, http.MethodPost, "/tagihan", body)
	if code != fiber.StatusCreated {
		t.Fatalf("create tagihan = %d %s", code, raw)
	}
	var tg struct {
		TagihanID string `json:"tagihan_id"`
		Bulan     *int   `json:"bulan"`
	}
	if err := json.Unmarshal(env.Data, &tg); err != nil || tg.Bulan == nil || *tg.Bulan != 7 {
		t.Fatalf("tagihan = %s (%v)", env.Data, err)
	}

	// duplikat
	if code, _, raw := do(t, app, http.MethodPost, "/tagihan", body); code != fiber.StatusConflict {
		t.Fatalf("duplikat = %d %s", code, raw)
	}

	// melebihi sisa: 422 + nominal maksimal
	over := `{"pembayaran":[{"tagihan_id":"` + tg.TagihanID + `","jumlah":200000}]}`
	code, env, raw = do(t, app, http.MethodPost, "/pembayaran/1001/bayar", over)
	if code != fiber.StatusUnprocessableEntity {
		t.Fatalf("over = %d %s", code, raw)
	}
	if env.Details["max"] != "150000" || !strings.Contains(env.Message, "Rp 150.000") {
		t.Errorf("over envelope = %+v", env)
	}

	pay := `{"pembayaran":[{"tagihan_id":"` + tg.TagihanID + `","jumlah":"100000"}]}`
	code, env, raw = do(t, app, http.MethodPost, "/pembayaran/1001/bayar", pay)
	if code != fiber.StatusCreated {
		t.Fatalf("bayar = %d %s", code, raw)
	}
	var res struct {
		Transaksi struct {
			ID string `json:"transaksi_id"`
		} `json:"transaksi"`
		Status string `json:"status_pembayaran"`
	}
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Status != "belum_lunas" {
		t.Errorf("status = %q", res.Status)
	}

	code, _, html := do(t, app, http.MethodGet, "/kwitansi/"+res.Transaksi.ID, "")
	if code != fiber.StatusOK {
		t.Fatalf("kwitansi = %d %s", code, html)
	}
	for _, want := range []string{"KWITANSI PEMBAYARAN", "Budi", "SPP", "Juli", "Rp 100.000", "Rp 50.000", "kasir"} {
		if !strings.Contains(html, want) {
			t.Errorf("kwitansi tidak memuat %q", want)
		}
	}

	code, env, _ = do(t, app, http.MethodGet, "/pembayaran/1001", "")
	if code != fiber.StatusOK {
		t.Fatalf("show = %d", code)
	}
	var detail struct {
		Status    string            `json:"status_pembayaran"`
		TotalSisa string            `json:"total_sisa"`
		Tagihan   []json.RawMessage `json:"tagihan"`
		Transaksi []json.RawMessage `json:"transaksi"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatal(err)
	}
	if detail.Status != "belum_lunas" || detail.TotalSisa != "50000" || len(detail.Tagihan) != 1 || len(detail.Transaksi) != 1 {
		t.Errorf("detail = %+v", detail)
	}
}

func TestTagihanKelasDanIndex(t *testing.T) {
	db := testdb.Open(t)
	petugas := testdb.User(t, db, "kasir", "staff")
	k := testdb.Kelas(t, db, "7A", "2024")
	testdb.Siswa(t, db, k.KelasID, "1001", "Budi")
	testdb.Siswa(t, db, k.KelasID, "1002", "Ani")
	lain := testdb.Kelas(t, db, "8A", "2023")
	testdb.Siswa(t, db, lain.KelasID, "2001", "Citra")
	buku := testdb.Pos(t, db, "Buku", posModel.PosTipeBebas)
	app := newApp(t, db, petugas.UserID.String())

	body := `{"kelas_id":"` + k.KelasID.String() + `","pos_id":"` + buku.PosID.String() + `","tahun_ajaran":"2024/2025","nominal":90000}`
	code, env, raw := do(t, app, http.MethodPost, "/tagihan/kelas", body)
	if code != fiber.StatusCreated {
		t.Fatalf("kelas = %d %s", code, raw)
	}
	var cnt struct{ Created, Skipped int }
	_ = json.Unmarshal(env.Data, &cnt)
	if cnt.Created != 2 || cnt.Skipped != 0 {
		t.Errorf("count = %+v", cnt)
	}
	_, env, _ = do(t, app, http.MethodPost, "/tagihan/kelas", body)
	_ = json.Unmarshal(env.Data, &cnt)
	if cnt.Created != 0 || cnt.Skipped != 2 {
		t.Errorf("ulang = %+v", cnt)
	}

	// Citra tidak punya tagihan, tidak muncul
	code, env, _ = do(t, app, http.MethodGet, "/pembayaran?angkatan=2024", "")
	if code != fiber.StatusOK {
		t.Fatalf("index = %d", code)
	}
	var rows []struct {
		NIS    string `json:"siswa_nis"`
		Status string `json:"status_pembayaran"`
	}
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].NIS != "1002" || rows[0].Status != "belum_lunas" {
		t.Errorf("rows = %+v", rows)
	}

	code, env, _ = do(t, app, http.MethodGet, "/tagihan/pengingat?pos_id="+buku.PosID.String(), "")
	if code != fiber.StatusOK {
		t.Fatalf("pengingat = %d", code)
	}
	var p struct {
		Siswa []json.RawMessage `json:"siswa"`
	}
	_ = json.Unmarshal(env.Data, &p)
	if len(p.Siswa) != 2 {
		t.Errorf("pengingat = %s", env.Data)
	}
}

func TestBayarErrors(t *testing.T) {
	db := testdb.Open(t)
	k := testdb.Kelas(t, db, "7A", "2024")
	testdb.Siswa(t, db, k.KelasID, "1001", "Budi")

	// tanpa login
	app := newApp(t, db, "")
	if code, _, raw := do(t, app, http.MethodPost, "/pembayaran/1001/bayar", `{"pembayaran":[]}`); code != fiber.StatusUnauthorized {
		t.Errorf("tanpa login = %d %s", code, raw)
	}

	petugas := testdb.User(t, db, "kasir", "staff")
	app = newApp(t, db, petugas.UserID.String())
	cases := []struct {
		name, path, body string
		want             int
	}{
		{"body kosong", "/pembayaran/1001/bayar", `{"pembayaran":[]}`, fiber.StatusUnprocessableEntity},
		{"json rusak", "/pembayaran/1001/bayar", `{`, fiber.StatusBadRequest},
		{"semua nol", "/pembayaran/1001/bayar", `{"pembayaran":[{"tagihan_id":"` + k.KelasID.String() + `","jumlah":0}]}`, fiber.StatusUnprocessableEntity},
		{"tagihan tidak ada", "/pembayaran/1001/bayar", `{"pembayaran":[{"tagihan_id":"` + k.KelasID.String() + `","jumlah":10}]}`, fiber.StatusNotFound},
		{"siswa tidak ada", "/pembayaran/9999/bayar", `{"pembayaran":[{"tagihan_id":"` + k.KelasID.String() + `","jumlah":10}]}`, fiber.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code, _, raw := do(t, app, http.MethodPost, tc.path, tc.body); code != tc.want {
				t.Errorf("status = %d, want %d (%s)", code, tc.want, raw)
			}
		})
	}

	if code, _, _ := do(t, app, http.MethodGet, "/pembayaran/9999", ""); code != fiber.StatusNotFound {
		t.Errorf("show siswa tidak ada = %d", code)
	}
	if code, _, _ := do(t, app, http.MethodGet, "/tagihan/pengingat", ""); code != fiber.StatusBadRequest {
		t.Errorf("pengingat tanpa pos = %d", code)
	}
}
