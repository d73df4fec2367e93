// Package seed loads the default login accounts and a couple of sample
// records into an empty store, so a fresh deployment has someone who can
// sign in. Seeding is skipped whenever any user already exists: it never
// overwrites or duplicates live data.
package seed

import (
	"context"
	"fmt"

	"github.com/sijil-app/sijil/internal/logging"
	"github.com/sijil-app/sijil/internal/records"
	"github.com/sijil-app/sijil/internal/store"
)

var adminNames = []string{"إبراهيم إسحق", "مريم إسحق"}

var viewerNames = []string{"مستخدم1", "مستخدم2", "مستخدم3"}

var samplePrisoners = []records.Prisoner{
	{
		Name:       "وديع حبيب سلامة",
		Charge:     "سرقة",
		Prison:     "15 مايو",
		Family:     "نوارة فايز حنا",
		Residence:  "مغاغة",
		Years:      "7",
		From:       "9/2023",
		To:         "9/2030",
		Phone:      "01286802529",
		NationalID: "27311192402244",
	},
	{
		Name:       "عماد اندريه غالي",
		Charge:     "شيكات",
		Prison:     "المنيا",
		Family:     "راندا جرجس بطرس",
		Residence:  "بني مزار",
		Years:      "20",
		From:       "8/2023",
		To:         "8/2048",
		Phone:      "01204120560",
		NationalID: "28007072402243",
	},
}

var sampleReleased = []records.ReleasedPrisoner{
	{
		Name:        "ايهاب شحاتة عزيز",
		Charge:      "مخدرات",
		Prison:      "وادي النطرون",
		Family:      "نرمين مجدي عطية",
		Residence:   "سمالوط",
		ReleaseDate: "6/2024",
		Phone:       "01066826781",
		NationalID:  "29810152403101",
	},
	{
		Name:        "ثابت عيد زاهي",
		Charge:      "اتلاف",
		Prison:      "المنيا",
		Family:      "حنان عيد عزيز",
		Residence:   "مطاي",
		ReleaseDate: "10/2024",
		Phone:       "01119517937",
		NationalID:  "2791126240805",
	},
}

// Run inserts the default users and sample records unless some user
// already exists. It returns the number of documents written.
func Run(ctx context.Context, st store.Store, logger logging.Logger) (int, error) {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	logger = logger.With("component", "seed")

	admins, viewers, err := st.Users(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking existing users: %w", err)
	}
	if len(admins) > 0 || len(viewers) > 0 {
		logger.Info(ctx, "users already present, nothing to seed",
			"admins", len(admins), "viewers", len(viewers))
		return 0, nil
	}

	written := 0
	for _, name := range adminNames {
		u := records.User{Name: name, Role: records.RoleAdmin}
		if _, err := st.Insert(ctx, store.UsersAdmins, u.Doc()); err != nil {
			return written, fmt.Errorf("seeding admin %q: %w", name, err)
		}
		written++
	}
	for _, name := range viewerNames {
		u := records.User{Name: name, Role: records.RoleViewer}
		if _, err := st.Insert(ctx, store.UsersViewers, u.Doc()); err != nil {
			return written, fmt.Errorf("seeding viewer %q: %w", name, err)
		}
		written++
	}
	for _, p := range samplePrisoners {
		if _, err := st.Insert(ctx, store.Prisoners, p.Doc()); err != nil {
			return written, fmt.Errorf("seeding prisoner %q: %w", p.Name, err)
		}
		written++
	}
	for _, r := range sampleReleased {
		if _, err := st.Insert(ctx, store.Released, r.Doc()); err != nil {
			return written, fmt.Errorf("seeding released record %q: %w", r.Name, err)
		}
		written++
	}

	logger.Info(ctx, "seed complete", "documents", written)
	return written, nil
}
