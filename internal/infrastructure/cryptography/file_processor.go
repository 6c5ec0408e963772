package cryptography

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
)

// fileProcessor struct that implements the FileProcessor interface
type fileProcessor struct {
	keyEngine     cryptoalg.KeyEngine
	oaepProcessor cryptoalg.OAEPProcessor
	label         []byte
	logger        logger.Logger
}

// NewFileProcessor creates and returns a new instance of fileProcessor. Every block is encoded and decoded
// under label.
func NewFileProcessor(keyEngine cryptoalg.KeyEngine, oaepProcessor cryptoalg.OAEPProcessor, label []byte, logger logger.Logger) (cryptoalg.FileProcessor, error) {
	if keyEngine == nil || oaepProcessor == nil {
		return nil, errors.New("key engine and OAEP processor are required")
	}
	return &fileProcessor{
		keyEngine:     keyEngine,
		oaepProcessor: oaepProcessor,
		label:         label,
		logger:        logger,
	}, nil
}

// EncryptFile encrypts inputPath into outputPath. A partially written output file is removed on failure.
func (f *fileProcessor) EncryptFile(inputPath, outputPath, publicKeyPath string) error {
	publicKey, err := LoadPublicKey(f.keyEngine, publicKeyPath)
	if err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return ioError("failed to open input file", err)
	}
	defer closeQuietly(in, f.logger)

	blocks, err := f.writeFile(outputPath, in, func(w io.Writer) (int, error) {
		return f.EncryptStream(bufio.NewReader(in), w, filepath.Ext(inputPath), publicKey)
	})
	if err != nil {
		return err
	}

	f.logger.Info("Encrypted file ", inputPath, " into ", outputPath, " (", blocks, " blocks)")
	return nil
}

// DecryptFile decrypts the container at inputPath. The output path is adjusted to carry the recovered
// extension and returned. A partially written output file is removed on failure.
func (f *fileProcessor) DecryptFile(inputPath, outputPath, privateKeyPath string) (string, error) {
	privateKey, err := LoadPrivateKey(f.keyEngine, privateKeyPath)
	if err != nil {
		return "", err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return "", ioError("failed to open input file", err)
	}
	defer closeQuietly(in, f.logger)

	r := bufio.NewReader(in)
	ext, err := DecodeHeader(r)
	if err != nil {
		return "", err
	}

	finalPath := ResolveOutputPath(outputPath, ext)
	blocks, err := f.writeFile(finalPath, in, func(w io.Writer) (int, error) {
		return f.decryptRecords(r, w, privateKey)
	})
	if err != nil {
		return "", err
	}

	f.logger.Info("Decrypted file ", inputPath, " into ", finalPath, " (", blocks, " blocks)")
	return finalPath, nil
}

// EncryptStream writes the header for extension and one record per plaintext chunk of r to w.
// An empty r produces a single record holding the empty message.
func (f *fileProcessor) EncryptStream(r io.Reader, w io.Writer, extension string, publicKey *cryptoalg.PublicKey) (int, error) {
	blockSize := publicKey.MaxMessageSize()
	if blockSize <= 0 {
		return 0, fmt.Errorf("%w: modulus of %d bytes leaves no room for a message", cryptoalg.ErrMessageTooLong, publicKey.Size())
	}

	if _, err := w.Write(EncodeHeader(extension)); err != nil {
		return 0, ioError("failed to write container header", err)
	}

	chunk := make([]byte, blockSize)
	blocks := 0
	for {
		n, readErr := io.ReadFull(r, chunk)
		if readErr != nil && !errors.Is(readErr, io.EOF) && !errors.Is(readErr, io.ErrUnexpectedEOF) {
			return blocks, ioError("failed to read input", readErr)
		}

		if n > 0 || blocks == 0 {
			block, err := f.oaepProcessor.Encode(chunk[:n], publicKey, f.label)
			if err != nil {
				return blocks, err
			}
			if err := writeRecord(w, block); err != nil {
				return blocks, err
			}
			blocks++
		}

		if readErr != nil {
			return blocks, nil
		}
	}
}

// DecryptStream reads a container from r and writes the recovered plaintext to w.
func (f *fileProcessor) DecryptStream(r io.Reader, w io.Writer, privateKey *cryptoalg.PrivateKey) (string, int, error) {
	ext, err := DecodeHeader(r)
	if err != nil {
		return "", 0, err
	}
	blocks, err := f.decryptRecords(r, w, privateKey)
	if err != nil {
		return "", blocks, err
	}
	return ext, blocks, nil
}

func (f *fileProcessor) decryptRecords(r io.Reader, w io.Writer, privateKey *cryptoalg.PrivateKey) (int, error) {
	block := make([]byte, privateKey.Size())
	blocks := 0
	for {
		err := readRecord(r, block)
		if errors.Is(err, io.EOF) {
			return blocks, nil
		}
		if err != nil {
			return blocks, fmt.Errorf("record %d: %w", blocks, err)
		}

		message, err := f.oaepProcessor.Decode(block, privateKey, f.label)
		if err != nil {
			return blocks, fmt.Errorf("record %d: %w", blocks, err)
		}
		if _, err := w.Write(message); err != nil {
			return blocks, ioError("failed to write output", err)
		}
		blocks++
	}
}

// writeFile runs fill against a temporary file next to path and renames it into place once fill
// succeeded. path must not name the file fill is reading from.
func (f *fileProcessor) writeFile(path string, input *os.File, fill func(w io.Writer) (int, error)) (int, error) {
	if err := checkDistinctOutput(input, path); err != nil {
		return 0, err
	}

	out, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, ioError("failed to create output file", err)
	}
	tmpPath := out.Name()

	bw := bufio.NewWriter(out)
	blocks, err := fill(bw)
	if err == nil {
		if flushErr := bw.Flush(); flushErr != nil {
			err = ioError("failed to flush output file", flushErr)
		}
	}
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = ioError("failed to close output file", closeErr)
	}
	if err == nil {
		if renameErr := os.Rename(tmpPath, path); renameErr != nil {
			err = ioError("failed to move output file into place", renameErr)
		}
	}

	if err != nil {
		if removeErr := os.Remove(tmpPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			f.logger.Warn("failed to remove partial output ", tmpPath, ": ", removeErr)
		}
		return blocks, err
	}
	return blocks, nil
}

// checkDistinctOutput fails when path already refers to the same file as input.
func checkDistinctOutput(input *os.File, path string) error {
	outInfo, err := os.Stat(path)
	if err != nil {
		// a missing output is the common case; other stat errors surface when the file is written
		return nil
	}
	inInfo, err := input.Stat()
	if err != nil {
		return ioError("failed to stat input file", err)
	}
	if os.SameFile(inInfo, outInfo) {
		return ioError("refusing to write output", fmt.Errorf("%s is the input file", path))
	}
	return nil
}

// LoadPublicKey loads a two-field public key file through engine.
func LoadPublicKey(engine cryptoalg.KeyEngine, path string) (*cryptoalg.PublicKey, error) {
	record, err := engine.LoadKey(path, cryptoalg.KeyKindPublic)
	if err != nil {
		return nil, err
	}
	return record.PublicKey()
}

// LoadPrivateKey loads a two- or four-field private key file through engine.
func LoadPrivateKey(engine cryptoalg.KeyEngine, path string) (*cryptoalg.PrivateKey, error) {
	record, err := engine.LoadKey(path, cryptoalg.KeyKindPrivate)
	if err != nil {
		return nil, err
	}
	return record.PrivateKey()
}

func closeQuietly(c io.Closer, logger logger.Logger) {
	if err := c.Close(); err != nil {
		logger.Warn("failed to close file: ", err)
	}
}
