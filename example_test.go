package deflog_test

import (
	"bytes"
	"fmt"

	deflog "github.com/Javier-varez/deferred-logging"
	"github.com/Javier-varez/deferred-logging/decoder"
)

var (
	exFmtBoot = deflog.InternInfo("boot complete in %d ms")
	exFmtFail = deflog.InternError("sensor %s offline")
)

func Example() {
	// Firmware side: encode records onto a wire.
	var wire bytes.Buffer
	tick := uint64(0)
	logger := deflog.NewWithOptions(deflog.NewStreamBackend(&wire), deflog.Options{
		Ticks: deflog.TickSourceFunc(func() uint64 { tick += 250; return tick }),
	})
	logger.Info(exFmtBoot, int32(84))
	logger.Error(exFmtFail, "imu0")

	// Host side: recover the text with the catalog alone.
	catalog, _ := decoder.ParseCatalog(deflog.AppendCatalog(nil))
	records, _ := decoder.DecodeStream(catalog, wire.Bytes())
	for _, rec := range records {
		fmt.Println(decoder.Render(rec, false))
	}
	// Output:
	// [       250] Info: boot complete in 84 ms
	// [       500] Error: sensor imu0 offline
}
